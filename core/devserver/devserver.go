package devserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/devserver/core/devcert"
	"github.com/dmitrymomot/devserver/core/health"
	"github.com/dmitrymomot/devserver/core/logger"
	"github.com/dmitrymomot/devserver/core/port"
	"github.com/dmitrymomot/devserver/core/server"
	"github.com/dmitrymomot/devserver/core/static"
	"github.com/dmitrymomot/devserver/middleware"
)

// Internal routes. They also make sure chi runs the middleware stack for
// every request, which it skips while no route is registered.
const (
	LivePath  = "/__devserver/live"
	ReadyPath = "/__devserver/ready"
)

// Handle describes a running development server.
type Handle struct {
	// Server is the bound server. Use Serve, Stop or Wait to manage it.
	Server *server.Server

	// App is the router requests reach after the middleware stack.
	App chi.Router

	// Port is the port actually bound.
	Port int

	// IP is the bind address, empty for all interfaces.
	IP string

	// Host is the advertised host name.
	Host string
}

// Protocol returns "https:" for TLS servers and "http:" otherwise.
func (h *Handle) Protocol() string {
	if h.Server != nil && h.Server.TLS() {
		return "https:"
	}
	return "http:"
}

// URL returns the base URL the server is reachable at.
func (h *Handle) URL() string {
	return h.Protocol() + "//" + net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Close stops the server gracefully and waits for it to finish.
func (h *Handle) Close() error {
	if h.Server == nil {
		return nil
	}
	if err := h.Server.Stop(); err != nil {
		return err
	}
	return h.Server.Wait()
}

// Create resolves a free port, assembles the application and binds the
// server. It returns once the server accepts connections.
func Create(ctx context.Context, cfg Config, opts ...Option) (*Handle, error) {
	o := newOptions(opts)
	cfg = cfg.withDefaults()

	p, err := port.Resolve(ctx, cfg.Port,
		port.WithHost(cfg.IP),
		port.WithMaxAttempts(o.portAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPort, err)
	}

	app, err := newApp(cfg, o)
	if err != nil {
		return nil, err
	}

	srvOpts := []server.Option{server.WithLogger(o.logger)}
	if cfg.HTTPS != nil {
		tlsCfg, err := provideTLS(ctx, cfg, o)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCertificate, err)
		}
		srvOpts = append(srvOpts, server.WithTLS(tlsCfg))
	}

	srv, err := server.NewFromConfig(net.JoinHostPort(cfg.IP, strconv.Itoa(p)), cfg.Server, srvOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}
	if err := srv.Listen(ctx, app); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}

	h := &Handle{
		Server: srv,
		App:    app,
		Port:   p,
		IP:     cfg.IP,
		Host:   cfg.Host,
	}

	o.logger.InfoContext(ctx,
		fmt.Sprintf("Server is running on %s//%s:%d", h.Protocol(), h.Host, h.Port),
		logger.Protocol(h.Protocol()),
		logger.Host(h.Host),
		logger.Port(h.Port),
	)

	return h, nil
}

// newApp builds the router with CORS, compression and history fallback, in
// that order.
func newApp(cfg Config, o *options) (chi.Router, error) {
	app := chi.NewRouter()
	app.Use(
		middleware.CORS(middleware.DevCORSConfig()),
		middleware.Compress(middleware.DefaultCompressionLevel),
		middleware.HistoryFallback(o.history),
	)

	var checks []func(context.Context) error
	if cfg.Root != "" {
		files, err := static.Dir(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStatic, err)
		}
		app.NotFound(files.ServeHTTP)
		checks = append(checks, health.DirCheck(cfg.Root))
	}

	app.Get(LivePath, health.Liveness)
	app.Get(ReadyPath, health.Readiness(o.logger, checks...))
	app.Head(LivePath, health.NoContent)

	return app, nil
}

func provideTLS(ctx context.Context, cfg Config, o *options) (*tls.Config, error) {
	provider := o.certProvider
	if provider == nil {
		m, err := devcert.NewManager(
			devcert.WithCertFiles(cfg.HTTPS.CertFile, cfg.HTTPS.KeyFile),
			devcert.WithCacheDir(cfg.HTTPS.CacheDir),
			devcert.WithLogger(o.logger),
		)
		if err != nil {
			return nil, err
		}
		provider = m
	}

	return provider.Provide(ctx, CertificateHosts(cfg))
}
