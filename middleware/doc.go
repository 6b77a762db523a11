// Package middleware provides the net/http middleware stack of the development
// server: CORS, response compression and SPA history fallback.
//
// All constructors return func(http.Handler) http.Handler and work with any
// router. HistoryFallback additionally reads the chi routing context to find
// registered routes, so it must be installed with Use on a chi router.
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.CORS(middleware.DevCORSConfig()),
//		middleware.Compress(middleware.DefaultCompressionLevel),
//		middleware.HistoryFallback(middleware.HistoryConfig{}),
//	)
//
// # CORS
//
// CORSConfig follows the usual allow-list model. DevCORSConfig reflects any
// request origin and allows credentials, which browsers accept only when the
// origin is echoed instead of "*". Preflight requests are answered with 204
// and never reach the next handler.
//
// # Compression
//
// Compress negotiates gzip or deflate from Accept-Encoding using the chi
// compressor with klauspost/compress codecs. Only compressible content types
// are encoded.
//
// # History fallback
//
// HistoryFallback rewrites navigation requests (GET or HEAD accepting HTML)
// for unknown, non-file paths to the index path, so client-side routers can
// handle deep links. Rewrites map path patterns to other entry points:
//
//	middleware.HistoryFallback(middleware.HistoryConfig{
//		Rewrites: []middleware.Rewrite{
//			{From: regexp.MustCompile(`^/admin`), To: "/admin.html"},
//		},
//	})
package middleware
