package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/devserver/core/config"
	"github.com/dmitrymomot/devserver/core/devserver"
	"github.com/dmitrymomot/devserver/core/logger"
	"github.com/dmitrymomot/devserver/core/server"
)

// configKey is the config file section holding the server settings.
const configKey = "devServer"

var (
	// ErrConfigFile is returned when the config file cannot be read.
	ErrConfigFile = errors.New("failed to read config file")

	// ErrInvalidSetting is returned for settings with an unusable value.
	ErrInvalidSetting = errors.New("invalid setting")
)

// envSettings is the environment layer, loaded with core/config.
type envSettings struct {
	Port         int      `env:"DEV_SERVER_PORT" envDefault:"8000"`
	Host         string   `env:"DEV_SERVER_HOST" envDefault:"localhost"`
	IP           string   `env:"DEV_SERVER_IP"`
	Root         string   `env:"DEV_SERVER_ROOT"`
	HTTPS        bool     `env:"DEV_SERVER_HTTPS"`
	HTTPSHosts   []string `env:"DEV_SERVER_HTTPS_HOSTS" envSeparator:","`
	CertFile     string   `env:"DEV_SERVER_CERT_FILE"`
	KeyFile      string   `env:"DEV_SERVER_KEY_FILE"`
	CertCacheDir string   `env:"DEV_SERVER_CERT_CACHE_DIR"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"LOG_FORMAT" envDefault:"text"`

	Server server.Config
}

// settings is the merged result of all layers.
type settings struct {
	Server    devserver.Config
	LogLevel  slog.Level
	LogFormat string
}

// https collects the TLS layer before it becomes a devserver.HTTPSConfig.
type https struct {
	enabled  bool
	hosts    []string
	certFile string
	keyFile  string
	cacheDir string
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default: ./devserver.{yaml,json,toml} if present)")
	fs.IntP("port", "p", devserver.DefaultPort, "preferred port, the next free one is used when taken")
	fs.String("host", devserver.DefaultHost, "host name reported in the server URL")
	fs.String("ip", "", "address to bind (default: all interfaces)")
	fs.StringP("root", "r", "", "directory with static files and index.html")
	fs.Bool("https", false, "serve HTTPS")
	fs.StringSlice("https-host", nil, "extra host name for the certificate (repeatable)")
	fs.String("cert", "", "certificate file (PEM)")
	fs.String("key", "", "private key file (PEM)")
	fs.String("cert-cache-dir", "", "directory for generated certificates")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: text or json")
}

// loadSettings merges defaults, environment, config file and flags, with the
// later layers taking precedence.
func loadSettings(cmd *cobra.Command) (settings, error) {
	var env envSettings
	if err := config.Load(&env); err != nil {
		return settings{}, err
	}

	cfg := devserver.Config{
		Port:   env.Port,
		Host:   env.Host,
		IP:     env.IP,
		Root:   env.Root,
		Server: env.Server,
	}
	tls := https{
		enabled:  env.HTTPS,
		hosts:    env.HTTPSHosts,
		certFile: env.CertFile,
		keyFile:  env.KeyFile,
		cacheDir: env.CertCacheDir,
	}
	level, format := env.LogLevel, env.LogFormat

	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")

	v, err := readConfigFile(configFile)
	if err != nil {
		return settings{}, err
	}
	if v != nil {
		applyFile(v, &cfg, &tls)
	}

	applyFlags(flags, &cfg, &tls)
	if flags.Changed("log-level") {
		level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		format, _ = flags.GetString("log-format")
	}

	if tls.enabled {
		cfg.HTTPS = &devserver.HTTPSConfig{
			Hosts:    tls.hosts,
			CertFile: tls.certFile,
			KeyFile:  tls.keyFile,
			CacheDir: tls.cacheDir,
		}
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return settings{}, fmt.Errorf("%w log level %q: %w", ErrInvalidSetting, level, err)
	}

	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return settings{}, fmt.Errorf("%w log format %q", ErrInvalidSetting, format)
	}

	return settings{Server: cfg, LogLevel: lvl, LogFormat: format}, nil
}

// readConfigFile reads path, or looks for devserver.* in the working directory
// when path is empty. Returns nil when no file is found.
func readConfigFile(path string) (*viper.Viper, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("devserver")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	return v, nil
}

// applyFile copies the devServer section. https may be a boolean or an object
// with hosts, certFile, keyFile and cacheDir.
func applyFile(v *viper.Viper, cfg *devserver.Config, tls *https) {
	key := func(name string) string { return configKey + "." + name }

	if v.IsSet(key("port")) {
		cfg.Port = v.GetInt(key("port"))
	}
	if v.IsSet(key("host")) {
		cfg.Host = v.GetString(key("host"))
	}
	if v.IsSet(key("ip")) {
		cfg.IP = v.GetString(key("ip"))
	}
	if v.IsSet(key("root")) {
		cfg.Root = v.GetString(key("root"))
	}

	switch val := v.Get(key("https")).(type) {
	case nil:
	case bool:
		tls.enabled = val
	case map[string]any:
		tls.enabled = true
		if v.IsSet(key("https.hosts")) {
			tls.hosts = v.GetStringSlice(key("https.hosts"))
		}
		if v.IsSet(key("https.certFile")) {
			tls.certFile = v.GetString(key("https.certFile"))
		}
		if v.IsSet(key("https.keyFile")) {
			tls.keyFile = v.GetString(key("https.keyFile"))
		}
		if v.IsSet(key("https.cacheDir")) {
			tls.cacheDir = v.GetString(key("https.cacheDir"))
		}
	default:
		tls.enabled = v.GetBool(key("https"))
	}

	timeouts := []struct {
		name string
		dst  *time.Duration
	}{
		{"server.readTimeout", &cfg.Server.ReadTimeout},
		{"server.readHeaderTimeout", &cfg.Server.ReadHeaderTimeout},
		{"server.writeTimeout", &cfg.Server.WriteTimeout},
		{"server.idleTimeout", &cfg.Server.IdleTimeout},
		{"server.shutdownTimeout", &cfg.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if v.IsSet(key(t.name)) {
			*t.dst = v.GetDuration(key(t.name))
		}
	}
}

func applyFlags(fs *pflag.FlagSet, cfg *devserver.Config, tls *https) {
	if fs.Changed("port") {
		cfg.Port, _ = fs.GetInt("port")
	}
	if fs.Changed("host") {
		cfg.Host, _ = fs.GetString("host")
	}
	if fs.Changed("ip") {
		cfg.IP, _ = fs.GetString("ip")
	}
	if fs.Changed("root") {
		cfg.Root, _ = fs.GetString("root")
	}
	if fs.Changed("https") {
		tls.enabled, _ = fs.GetBool("https")
	}
	if fs.Changed("https-host") {
		tls.hosts, _ = fs.GetStringSlice("https-host")
		tls.enabled = true
	}
	if fs.Changed("cert") {
		tls.certFile, _ = fs.GetString("cert")
		tls.enabled = true
	}
	if fs.Changed("key") {
		tls.keyFile, _ = fs.GetString("key")
		tls.enabled = true
	}
	if fs.Changed("cert-cache-dir") {
		tls.cacheDir, _ = fs.GetString("cert-cache-dir")
	}
}

// newLogger builds the process logger from the merged settings.
func newLogger(s settings, cmd *cobra.Command) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevel(s.LogLevel),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithAttr(slog.String("app", appName)),
	}
	if s.LogFormat == "json" {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...)
}
