package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(r *http.Request) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty and AllowOriginFunc is nil, defaults to "*".
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to DefaultCORSMethods.
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, the preflight's Access-Control-Request-Headers value is echoed back.
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials (cookies, authorization headers)
	// are allowed. Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc provides custom origin validation logic.
	// Takes precedence over AllowOrigins when set.
	// Returns the allowed origin value and whether the origin is allowed
	AllowOriginFunc func(origin string) (string, bool)

	// PreflightAlways answers every OPTIONS request with 204 and the CORS
	// headers, even without Access-Control-Request-Method or for a
	// disallowed origin or method. The browser then enforces the policy.
	PreflightAlways bool
}

// DefaultCORSMethods are the methods allowed when CORSConfig.AllowMethods is empty.
var DefaultCORSMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// DevCORSConfig returns the permissive policy of the development server:
// any origin is reflected, credentials are allowed.
func DevCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods:     slices.Clone(DefaultCORSMethods),
		AllowCredentials: true,
		AllowOriginFunc:  AllowOriginReflect(),
		PreflightAlways:  true,
	}
}

// CORS returns a middleware that handles both preflight OPTIONS requests and
// actual CORS requests.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(middleware.CORS(middleware.DevCORSConfig()))
//
//	// Production usage with specific configuration
//	r.Use(middleware.CORS(middleware.CORSConfig{
//		AllowOrigins:     []string{"https://myapp.com"},
//		AllowMethods:     []string{"GET", "POST"},
//		AllowHeaders:     []string{"Content-Type", "Authorization"},
//		AllowCredentials: true,
//		MaxAge:           86400,
//	}))
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = slices.Clone(DefaultCORSMethods)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[origin] = true
	}

	resolveOrigin := func(origin string) (string, bool) {
		// Origin validation priority: custom function > wildcard/empty > explicit list
		switch {
		case cfg.AllowOriginFunc != nil:
			return cfg.AllowOriginFunc(origin)
		case len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"]:
			return "*", true
		case allowOriginsMap[origin]:
			return origin, true
		}
		return "", false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			headers := w.Header()
			headers.Add("Vary", "Origin")

			allowedOrigin, allowed := resolveOrigin(r.Header.Get("Origin"))

			requestMethod := r.Header.Get("Access-Control-Request-Method")
			if r.Method == http.MethodOptions && (requestMethod != "" || cfg.PreflightAlways) {
				headers.Add("Vary", "Access-Control-Request-Method")
				headers.Add("Vary", "Access-Control-Request-Headers")

				methodAllowed := requestMethod == "" || slices.Contains(cfg.AllowMethods, requestMethod)
				if (!allowed || !methodAllowed) && !cfg.PreflightAlways {
					w.WriteHeader(http.StatusForbidden)
					return
				}

				if allowed {
					headers.Set("Access-Control-Allow-Origin", allowedOrigin)
				}
				headers.Set("Access-Control-Allow-Methods", allowMethods)

				if requestHeaders := r.Header.Get("Access-Control-Request-Headers"); requestHeaders != "" {
					if allowHeaders != "" {
						headers.Set("Access-Control-Allow-Headers", allowHeaders)
					} else {
						headers.Set("Access-Control-Allow-Headers", requestHeaders)
					}
				}

				// Credentials must not be combined with a wildcard origin.
				if allowed && cfg.AllowCredentials && allowedOrigin != "*" {
					headers.Set("Access-Control-Allow-Credentials", "true")
				}

				if cfg.MaxAge > 0 {
					headers.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}

				headers.Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowed {
				headers.Set("Access-Control-Allow-Origin", allowedOrigin)

				if cfg.AllowCredentials && allowedOrigin != "*" {
					headers.Set("Access-Control-Allow-Credentials", "true")
				}

				if exposeHeaders != "" {
					headers.Set("Access-Control-Expose-Headers", exposeHeaders)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AllowOriginReflect returns an AllowOriginFunc that allows any non-empty origin
// and echoes it back. Unlike the static wildcard ("*") it permits credentials.
func AllowOriginReflect() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}
