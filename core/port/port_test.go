package port_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devserver/core/port"
)

// occupy binds a listener on all interfaces and keeps it open for the test.
func occupy(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l.Addr().(*net.TCPAddr).Port
}

// freePort returns a port that was free a moment ago.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	p := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return p
}

func TestResolveFreePort(t *testing.T) {
	t.Parallel()

	want := freePort(t)
	got, err := port.Resolve(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveOccupiedPort(t *testing.T) {
	t.Parallel()

	busy := occupy(t)
	got, err := port.Resolve(context.Background(), busy)
	require.NoError(t, err)
	assert.Greater(t, got, busy)
	assert.True(t, port.Available(context.Background(), "", got))
}

func TestResolveExhausted(t *testing.T) {
	t.Parallel()

	busy := occupy(t)
	_, err := port.Resolve(context.Background(), busy, port.WithMaxAttempts(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrPortExhausted)
}

func TestResolveInvalidPort(t *testing.T) {
	t.Parallel()

	for _, p := range []int{0, -1, port.MaxPort + 1} {
		_, err := port.Resolve(context.Background(), p)
		assert.ErrorIs(t, err, port.ErrInvalidPort, "port %d", p)
	}
}

func TestResolveCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := port.Resolve(ctx, 8000)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveWithHost(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	busy := l.Addr().(*net.TCPAddr).Port

	got, err := port.Resolve(context.Background(), busy, port.WithHost("127.0.0.1"))
	require.NoError(t, err)
	assert.Greater(t, got, busy)
}
