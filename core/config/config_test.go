package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devserver/core/config"
)

type defaultsConfig struct {
	Port int    `env:"CONFIG_TEST_DEFAULTS_PORT" envDefault:"8000"`
	Host string `env:"CONFIG_TEST_DEFAULTS_HOST" envDefault:"localhost"`
}

type envConfig struct {
	Port  int      `env:"CONFIG_TEST_ENV_PORT" envDefault:"8000"`
	Hosts []string `env:"CONFIG_TEST_ENV_HOSTS" envSeparator:","`
}

type cachedConfig struct {
	Host string `env:"CONFIG_TEST_CACHED_HOST" envDefault:"localhost"`
}

type invalidConfig struct {
	Port int `env:"CONFIG_TEST_INVALID_PORT"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_ENV_PORT", "4000")
	t.Setenv("CONFIG_TEST_ENV_HOSTS", "example.com,dev.local")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, []string{"example.com", "dev.local"}, cfg.Hosts)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED_HOST", "first.local")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first.local", first.Host)

	t.Setenv("CONFIG_TEST_CACHED_HOST", "second.local")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first.local", second.Host)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("CONFIG_TEST_INVALID_PORT", "not-a-number")

	var cfg invalidConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParse)
}

func TestMustLoadPanicsOnMissingRequired(t *testing.T) {
	var cfg requiredConfig
	assert.Panics(t, func() {
		config.MustLoad(&cfg)
	})
}

func TestLoadNilTarget(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilTarget)
}
