package main

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devserver/core/devserver"
)

func parse(t *testing.T, args ...string) (settings, error) {
	t.Helper()

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return loadSettings(cmd)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()

	s, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, devserver.DefaultPort, s.Server.Port)
	assert.Equal(t, devserver.DefaultHost, s.Server.Host)
	assert.Nil(t, s.Server.HTTPS)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
}

func TestLoadSettingsConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "devserver.yaml", `
devServer:
  port: 4000
  host: 0.0.0.0
  ip: 10.0.0.5
  root: ./dist
  https:
    hosts:
      - example.com
    cacheDir: /tmp/certs
  server:
    shutdownTimeout: 2s
`)

	s, err := parse(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, 4000, s.Server.Port)
	assert.Equal(t, "0.0.0.0", s.Server.Host)
	assert.Equal(t, "10.0.0.5", s.Server.IP)
	assert.Equal(t, "./dist", s.Server.Root)
	assert.Equal(t, 2*time.Second, s.Server.Server.ShutdownTimeout)
	require.NotNil(t, s.Server.HTTPS)
	assert.Equal(t, []string{"example.com"}, s.Server.HTTPS.Hosts)
	assert.Equal(t, "/tmp/certs", s.Server.HTTPS.CacheDir)
	assert.Equal(t,
		[]string{"example.com", "127.0.0.1", "localhost", "10.0.0.5"},
		devserver.CertificateHosts(s.Server),
	)
}

func TestLoadSettingsHTTPSBoolean(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "devserver.json", `{"devServer": {"https": true}}`)

	s, err := parse(t, "--config", path)
	require.NoError(t, err)
	require.NotNil(t, s.Server.HTTPS)
	assert.Empty(t, s.Server.HTTPS.Hosts)
}

func TestLoadSettingsFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "devserver.toml", `
[devServer]
port = 7000
host = "file.test"
https = true
`)

	s, err := parse(t, "--config", path, "--port", "9000", "--https=false", "--log-level", "debug", "--log-format", "JSON")
	require.NoError(t, err)

	assert.Equal(t, 9000, s.Server.Port)
	assert.Equal(t, "file.test", s.Server.Host)
	assert.Nil(t, s.Server.HTTPS)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadSettingsCertificateFlagsEnableHTTPS(t *testing.T) {
	t.Parallel()

	s, err := parse(t, "--https-host", "a.test", "--https-host", "b.test", "--cert", "c.pem", "--key", "k.pem")
	require.NoError(t, err)

	require.NotNil(t, s.Server.HTTPS)
	assert.Equal(t, []string{"a.test", "b.test"}, s.Server.HTTPS.Hosts)
	assert.Equal(t, "c.pem", s.Server.HTTPS.CertFile)
	assert.Equal(t, "k.pem", s.Server.HTTPS.KeyFile)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Parallel()

	_, err := parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFile)

	_, err = parse(t, "--log-level", "loud")
	assert.ErrorIs(t, err, ErrInvalidSetting)

	_, err = parse(t, "--log-format", "xml")
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestRunServesUntilCanceled(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	p := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--ip", "127.0.0.1", "--port", strconv.Itoa(p), "--log-format", "json"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Server is running on http://localhost:")
	assert.Contains(t, out.String(), "server shutdown complete")
}
