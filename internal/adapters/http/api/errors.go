package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrUnknownTeam = errors.New("unknown team")
	ErrNoReport    = errors.New("no injury report available")
)
