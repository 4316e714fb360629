package cache

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrRefresh = errors.New("cache refresh failed")
)
