package static

import "errors"

var (
	// ErrRootNotFound is returned when the served directory does not exist.
	ErrRootNotFound = errors.New("static root does not exist")

	// ErrRootNotDir is returned when the served path is not a directory.
	ErrRootNotDir = errors.New("static root is not a directory")
)
