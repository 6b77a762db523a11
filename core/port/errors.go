package port

import "errors"

var (
	// ErrInvalidPort is returned when the preferred port is outside 1..65535.
	ErrInvalidPort = errors.New("invalid port")

	// ErrPortExhausted is returned when no free port is found in the search window.
	ErrPortExhausted = errors.New("no available port found")
)
