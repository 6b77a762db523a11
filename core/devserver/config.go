package devserver

import (
	"strings"

	"github.com/dmitrymomot/devserver/core/server"
)

const (
	// DefaultPort is the preferred port when Config.Port is zero.
	DefaultPort = 8000

	// DefaultHost is the advertised host when Config.Host is empty.
	DefaultHost = "localhost"

	// wildcardHost binds every interface and never appears in certificates.
	wildcardHost = "0.0.0.0"
)

// Config describes the development server.
type Config struct {
	// Port is the preferred port. The first free port at or above it is used.
	Port int

	// Host is the host name reported in the startup line.
	Host string

	// IP is the address to bind. Empty binds all interfaces.
	IP string

	// HTTPS enables TLS when non-nil.
	HTTPS *HTTPSConfig

	// Root is an optional directory served for requests no route matches.
	Root string

	// Server holds the HTTP server timeouts. Zero values keep the defaults.
	Server server.Config
}

// HTTPSConfig configures the TLS listener.
type HTTPSConfig struct {
	// Hosts are extra host names the certificate must cover.
	Hosts []string

	// CertFile and KeyFile select an existing certificate. Both or neither.
	CertFile string
	KeyFile  string

	// CacheDir stores generated certificates. Defaults to devcert.DefaultCacheDir.
	CacheDir string
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	return c
}

// CertificateHosts returns the host names a certificate for cfg must cover:
// the configured HTTPS hosts, 127.0.0.1, localhost, the bind IP and the host,
// in that order and without duplicates. The host is left out when it is the
// wildcard address 0.0.0.0. cfg is not modified.
func CertificateHosts(cfg Config) []string {
	cfg = cfg.withDefaults()

	var extra []string
	if cfg.HTTPS != nil {
		extra = cfg.HTTPS.Hosts
	}

	candidates := make([]string, 0, len(extra)+4)
	candidates = append(candidates, extra...)
	candidates = append(candidates, "127.0.0.1", "localhost", cfg.IP)
	if cfg.Host != wildcardHost {
		candidates = append(candidates, cfg.Host)
	}

	hosts := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, h := range candidates {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		hosts = append(hosts, h)
	}

	return hosts
}
