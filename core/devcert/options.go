package devcert

import (
	"log/slog"
	"time"

	"github.com/go-acme/lego/v4/certcrypto"
	"golang.org/x/crypto/acme/autocert"
)

// Option configures a Manager during initialization.
type Option func(*Manager)

// WithCertFiles uses an existing certificate and key instead of generating one.
func WithCertFiles(certFile, keyFile string) Option {
	return func(m *Manager) {
		m.certFile = certFile
		m.keyFile = keyFile
	}
}

// WithCacheDir stores generated certificates in dir.
func WithCacheDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.cache = autocert.DirCache(dir)
		}
	}
}

// WithCache sets a custom cache implementation.
// By default, autocert.DirCache is used with DefaultCacheDir.
func WithCache(cache autocert.Cache) Option {
	return func(m *Manager) {
		if cache != nil {
			m.cache = cache
		}
	}
}

// WithCacheKey sets the cache entry name of the generated bundle.
func WithCacheKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.cacheKey = key
		}
	}
}

// WithValidity sets the lifetime of generated certificates.
func WithValidity(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.validity = d
		}
	}
}

// WithRenewBefore sets how close to expiry a cached certificate is replaced.
func WithRenewBefore(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.renewBefore = d
		}
	}
}

// WithKeyType sets the private key algorithm of generated certificates.
func WithKeyType(keyType certcrypto.KeyType) Option {
	return func(m *Manager) {
		m.keyType = keyType
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the time source. Primarily useful for testing expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
