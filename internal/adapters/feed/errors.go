package feed

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrFetch  = errors.New("injury feed fetch failed")
	ErrDecode = errors.New("injury feed decode failed")
)
