// Package devserver starts a local development HTTP or HTTPS server.
//
// Create picks a free port at or above the preferred one, builds a chi router
// with CORS, compression and SPA history fallback already attached, provisions
// a certificate when HTTPS is requested and binds the listener:
//
//	h, err := devserver.Create(ctx, devserver.Config{
//		Port:  4000,
//		Root:  "./dist",
//		HTTPS: &devserver.HTTPSConfig{Hosts: []string{"app.test"}},
//	}, devserver.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	h.App.Get("/api/ping", ping)
//	return h.Server.Serve(ctx)
//
// Once bound, Create logs "Server is running on https://localhost:4000" with
// the resolved port. Routes added to App must be registered before the
// requests that need them arrive.
//
// Without CertFile and KeyFile, HTTPS uses a self-signed certificate generated
// by core/devcert and cached between runs. CertificateHosts shows the host
// names it covers.
package devserver
