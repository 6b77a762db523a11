// Package server wraps http.Server with a bind-then-serve lifecycle, graceful
// shutdown and functional options.
//
// Listen binds the address synchronously and serves in the background, so the
// caller knows the port is taken before it reports the server as running:
//
//	srv := server.New("127.0.0.1:8000",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(5*time.Second),
//	)
//	if err := srv.Listen(ctx, handler); err != nil {
//		return err // wraps server.ErrBind when the port is taken
//	}
//	defer srv.Stop()
//
// Serve blocks until the context is canceled and then shuts down gracefully,
// which fits errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return srv.Serve(ctx) })
//
// Run combines both steps, and Start blocks until the context is canceled
// without shutting down.
//
// # TLS
//
// WithTLS switches the server to HTTPS. Fields the given configuration leaves
// unset (minimum version, cipher suites, curves) are filled from
// DefaultTLSConfig. HTTP/2 is negotiated automatically over TLS.
//
// # Defaults
//
//   - ReadTimeout: 15 seconds
//   - ReadHeaderTimeout: 5 seconds
//   - WriteTimeout: 15 seconds
//   - IdleTimeout: 60 seconds
//   - MaxHeaderBytes: 1MB
//   - Graceful shutdown timeout: 30 seconds
//   - Logger: discards output
//
// Config carries the same values with env tags for core/config.
package server
