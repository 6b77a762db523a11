package devcert

import "errors"

var (
	// ErrNoHosts is returned when a certificate is requested for an empty host list.
	ErrNoHosts = errors.New("at least one host is required")

	// ErrIncompleteKeyPair is returned when only one of certificate and key files is set.
	ErrIncompleteKeyPair = errors.New("both certificate and key files are required")

	// ErrLoadCertificate is returned when the provided certificate pair cannot be loaded.
	ErrLoadCertificate = errors.New("failed to load certificate")

	// ErrGenerationFailed is returned when a self-signed certificate cannot be generated.
	ErrGenerationFailed = errors.New("certificate generation failed")

	// ErrCache is returned when the certificate cache cannot be read or written.
	ErrCache = errors.New("certificate cache error")
)
