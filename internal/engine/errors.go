package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrBadOffset indicates a navigate expression that could not be
	// parsed in the active offset display format.
	ErrBadOffset = errors.New("bad offset expression")
)
