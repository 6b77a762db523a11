package middleware

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Rewrite maps request paths matching From to the To path.
type Rewrite struct {
	From *regexp.Regexp
	To   string
}

// HistoryConfig defines configuration options for the history fallback middleware.
type HistoryConfig struct {
	// Index is the path navigation requests are rewritten to. Defaults to "/".
	Index string

	// HTMLAcceptHeaders lists Accept values that mark a navigation request.
	// Defaults to "text/html" and "*/*".
	HTMLAcceptHeaders []string

	// DisableDotRule rewrites paths whose last segment contains a dot too.
	// By default such paths are treated as file requests and left alone.
	DisableDotRule bool

	// Rewrites are checked in order before the index fallback. The first match wins.
	Rewrites []Rewrite
}

// HistoryFallback returns a middleware that serves the index resource for
// client-side routed URLs. A request is rewritten when it is a GET or HEAD,
// accepts HTML without preferring JSON, does not look like a file and matches
// no registered route.
//
// Route matching uses the chi routing context, so the middleware must be
// installed with Use on a chi router.
//
//	r := chi.NewRouter()
//	r.Use(middleware.HistoryFallback(middleware.HistoryConfig{}))
//	r.NotFound(static.Dir("./dist").ServeHTTP)
func HistoryFallback(cfg HistoryConfig) func(http.Handler) http.Handler {
	if cfg.Index == "" {
		cfg.Index = "/"
	}
	if len(cfg.HTMLAcceptHeaders) == 0 {
		cfg.HTMLAcceptHeaders = []string{"text/html", "*/*"}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			accept := r.Header.Get("Accept")
			if accept == "" || strings.HasPrefix(accept, "application/json") || !acceptsAny(accept, cfg.HTMLAcceptHeaders) {
				next.ServeHTTP(w, r)
				return
			}

			rctx := chi.RouteContext(r.Context())
			routePath := r.URL.Path
			if rctx != nil && rctx.RoutePath != "" {
				routePath = rctx.RoutePath
			}

			for _, rw := range cfg.Rewrites {
				if rw.From != nil && rw.From.MatchString(routePath) {
					next.ServeHTTP(w, rewritePath(r, rctx, rw.To))
					return
				}
			}

			if !cfg.DisableDotRule && isFilePath(routePath) {
				next.ServeHTTP(w, r)
				return
			}

			if rctx != nil && routeExists(rctx.Routes, r.Method, routePath) {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, rewritePath(r, rctx, cfg.Index))
		})
	}
}

// routeExists reports whether routes has a handler for the path. HEAD requests
// also match GET routes.
func routeExists(routes chi.Routes, method, path string) bool {
	if routes == nil {
		return false
	}
	if routes.Match(chi.NewRouteContext(), method, path) {
		return true
	}
	return method == http.MethodHead && routes.Match(chi.NewRouteContext(), http.MethodGet, path)
}

// isFilePath reports whether the last path segment contains a dot.
func isFilePath(p string) bool {
	return strings.LastIndex(p, ".") > strings.LastIndex(p, "/")
}

func acceptsAny(accept string, values []string) bool {
	for _, v := range values {
		if strings.Contains(accept, v) {
			return true
		}
	}
	return false
}

// rewritePath returns a shallow copy of r targeting target. The query string of
// target, if any, replaces the original one.
func rewritePath(r *http.Request, rctx *chi.Context, target string) *http.Request {
	u, err := url.Parse(target)
	if err != nil {
		return r
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = u.Path
	r2.URL.RawPath = ""
	if u.RawQuery != "" {
		r2.URL.RawQuery = u.RawQuery
	}
	r2.RequestURI = r2.URL.RequestURI()

	if rctx != nil {
		rctx.RoutePath = u.Path
	}

	return r2
}
