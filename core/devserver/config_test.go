package devserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devserver/core/devserver"
)

func TestCertificateHosts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  devserver.Config
		want []string
	}{
		{
			name: "wildcard host is left out",
			cfg: devserver.Config{
				Host:  "0.0.0.0",
				IP:    "10.0.0.5",
				HTTPS: &devserver.HTTPSConfig{Hosts: []string{"example.com"}},
			},
			want: []string{"example.com", "127.0.0.1", "localhost", "10.0.0.5"},
		},
		{
			name: "defaults",
			cfg:  devserver.Config{HTTPS: &devserver.HTTPSConfig{}},
			want: []string{"127.0.0.1", "localhost"},
		},
		{
			name: "custom host appended",
			cfg:  devserver.Config{Host: "app.test", HTTPS: &devserver.HTTPSConfig{}},
			want: []string{"127.0.0.1", "localhost", "app.test"},
		},
		{
			name: "duplicates removed",
			cfg: devserver.Config{
				Host:  "localhost",
				IP:    "127.0.0.1",
				HTTPS: &devserver.HTTPSConfig{Hosts: []string{"localhost", "api.test", "api.test", " "}},
			},
			want: []string{"localhost", "api.test", "127.0.0.1"},
		},
		{
			name: "no https config",
			cfg:  devserver.Config{IP: "192.168.1.2"},
			want: []string{"127.0.0.1", "localhost", "192.168.1.2"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, devserver.CertificateHosts(tt.cfg))
		})
	}
}

func TestCertificateHostsDoesNotModifyConfig(t *testing.T) {
	t.Parallel()

	hosts := make([]string, 1, 8)
	hosts[0] = "example.com"
	cfg := devserver.Config{HTTPS: &devserver.HTTPSConfig{Hosts: hosts}}

	got := devserver.CertificateHosts(cfg)
	got[0] = "changed"

	assert.Equal(t, []string{"example.com"}, cfg.HTTPS.Hosts)
	assert.Equal(t, "example.com", hosts[:1][0])
	assert.Empty(t, cfg.Host)
}
