package server

import "errors"

var (
	// ErrMissingAddress is returned when server address is not provided.
	ErrMissingAddress = errors.New("server address is required")

	// ErrServerAlreadyRunning is returned by Listen and Start on a running server.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrBind is returned when the listen address cannot be bound.
	ErrBind = errors.New("failed to bind address")
)
