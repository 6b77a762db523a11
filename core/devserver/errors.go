package devserver

import "errors"

var (
	// ErrPort is returned when no port can be resolved.
	ErrPort = errors.New("devserver: no available port")

	// ErrCertificate is returned when the TLS configuration cannot be provided.
	ErrCertificate = errors.New("devserver: certificate unavailable")

	// ErrListen is returned when the server cannot bind its address.
	ErrListen = errors.New("devserver: failed to listen")

	// ErrStatic is returned when the static root cannot be served.
	ErrStatic = errors.New("devserver: invalid static root")
)
