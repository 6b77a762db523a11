package devcert

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-acme/lego/v4/certcrypto"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/devserver/core/logger"
)

const (
	// DefaultCacheKey is the cache entry holding the generated bundle.
	DefaultCacheKey = "devserver.pem"

	// DefaultValidity is the lifetime of a generated certificate.
	DefaultValidity = 365 * 24 * time.Hour

	// DefaultRenewBefore is how close to expiry a cached certificate is replaced.
	DefaultRenewBefore = 24 * time.Hour
)

// Manager provides TLS configurations for the development server.
// Safe for concurrent use.
type Manager struct {
	mu          sync.Mutex
	cache       autocert.Cache
	cacheKey    string
	certFile    string
	keyFile     string
	validity    time.Duration
	renewBefore time.Duration
	keyType     certcrypto.KeyType
	logger      *slog.Logger
	now         func() time.Time
}

// NewManager creates a certificate manager. Without WithCertFiles it generates
// self-signed certificates and caches them in DefaultCacheDir.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		cacheKey:    DefaultCacheKey,
		validity:    DefaultValidity,
		renewBefore: DefaultRenewBefore,
		keyType:     certcrypto.EC256,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if (m.certFile == "") != (m.keyFile == "") {
		return nil, ErrIncompleteKeyPair
	}

	if m.cache == nil && m.certFile == "" {
		m.cache = autocert.DirCache(DefaultCacheDir())
	}

	return m, nil
}

// DefaultCacheDir returns the directory generated certificates are stored in:
// devserver/certs under the user cache directory, or under the temp directory
// when no user cache directory is known.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "devserver", "certs")
}

// Provide returns a TLS configuration whose certificate covers every host.
func (m *Manager) Provide(ctx context.Context, hosts []string) (*tls.Config, error) {
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}

	if m.certFile != "" {
		cert, err := tls.LoadX509KeyPair(m.certFile, m.keyFile)
		if err != nil {
			return nil, fmt.Errorf("%w from %s, %s: %w", ErrLoadCertificate, m.certFile, m.keyFile, err)
		}
		m.logger.DebugContext(ctx, "using provided certificate",
			logger.Component("devcert"),
			logger.Path(m.certFile),
		)
		return newTLSConfig(cert), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bundle, err := m.cache.Get(ctx, m.cacheKey)
	switch {
	case err == nil:
		if cert, ok := m.reusable(bundle, hosts); ok {
			m.logger.DebugContext(ctx, "using cached certificate",
				logger.Component("devcert"),
				logger.Hosts(hosts),
			)
			return newTLSConfig(cert), nil
		}
	case errors.Is(err, autocert.ErrCacheMiss):
	default:
		return nil, fmt.Errorf("%w: read %s: %w", ErrCache, m.cacheKey, err)
	}

	bundle, err = generate(hosts, m.keyType, m.now(), m.validity)
	if err != nil {
		return nil, err
	}

	cert, err := tls.X509KeyPair(bundle, bundle)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}

	if err := m.cache.Put(ctx, m.cacheKey, bundle); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrCache, m.cacheKey, err)
	}

	m.logger.InfoContext(ctx, "generated self-signed certificate",
		logger.Component("devcert"),
		logger.Hosts(hosts),
		slog.Duration("validity", m.validity),
	)

	return newTLSConfig(cert), nil
}

// reusable parses a cached bundle and reports whether it covers hosts and stays
// valid for longer than the renewal window.
func (m *Manager) reusable(bundle []byte, hosts []string) (tls.Certificate, bool) {
	certs, err := certcrypto.ParsePEMBundle(bundle)
	if err != nil {
		return tls.Certificate{}, false
	}

	leaf := certs[0]
	now := m.now()
	if now.Before(leaf.NotBefore) || !now.Add(m.renewBefore).Before(leaf.NotAfter) {
		return tls.Certificate{}, false
	}
	if !covers(leaf, hosts) {
		return tls.Certificate{}, false
	}

	cert, err := tls.X509KeyPair(bundle, bundle)
	if err != nil {
		return tls.Certificate{}, false
	}
	return cert, true
}

func newTLSConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
}
