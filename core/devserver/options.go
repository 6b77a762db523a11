package devserver

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/dmitrymomot/devserver/core/logger"
	"github.com/dmitrymomot/devserver/core/port"
	"github.com/dmitrymomot/devserver/middleware"
)

// CertProvider supplies the TLS configuration for a set of host names.
// *devcert.Manager implements it.
type CertProvider interface {
	Provide(ctx context.Context, hosts []string) (*tls.Config, error)
}

type options struct {
	logger       *slog.Logger
	certProvider CertProvider
	portAttempts int
	history      middleware.HistoryConfig
}

// Option configures Create.
type Option func(*options)

// WithLogger sets the logger for the startup line and server events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCertProvider replaces the default devcert.Manager.
func WithCertProvider(p CertProvider) Option {
	return func(o *options) {
		o.certProvider = p
	}
}

// WithPortAttempts sets how many consecutive ports are probed.
func WithPortAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.portAttempts = n
		}
	}
}

// WithHistory configures the SPA history fallback, e.g. to add rewrites.
func WithHistory(cfg middleware.HistoryConfig) Option {
	return func(o *options) {
		o.history = cfg
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:       logger.Discard(),
		portAttempts: port.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
