// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file from the working directory on first use (if
// present) and uses the caarlos0/env library for parsing environment variables
// into struct fields.
//
// Basic usage:
//
//	type Config struct {
//		Port int    `env:"DEVSERVER_PORT" envDefault:"8000"`
//		Host string `env:"DEVSERVER_HOST" envDefault:"localhost"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// A second Load for the same type returns the cached value even if the
// environment has changed in between. Different types are cached independently.
package config
