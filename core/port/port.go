package port

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

const (
	// MaxPort is the highest valid TCP port.
	MaxPort = 65535

	// DefaultMaxAttempts is how many consecutive ports Resolve probes.
	DefaultMaxAttempts = 100
)

type config struct {
	host        string
	maxAttempts int
}

// Option configures Resolve.
type Option func(*config)

// WithHost sets the address probed for availability. Empty means all interfaces.
func WithHost(host string) Option {
	return func(c *config) {
		c.host = host
	}
}

// WithMaxAttempts sets how many consecutive ports are probed. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// Resolve returns preferred if it is free, otherwise the first free port above it.
func Resolve(ctx context.Context, preferred int, opts ...Option) (int, error) {
	if preferred < 1 || preferred > MaxPort {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, preferred)
	}

	cfg := &config{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(cfg)
	}

	last := min(preferred+cfg.maxAttempts-1, MaxPort)
	for p := preferred; p <= last; p++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if Available(ctx, cfg.host, p) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w in range %d-%d", ErrPortExhausted, preferred, last)
}

// Available reports whether a TCP listener can be bound to host:port.
func Available(ctx context.Context, host string, port int) bool {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
