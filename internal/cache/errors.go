package cache

import "errors"

// ErrMiss is returned by Backend.Get for absent keys.
var ErrMiss = errors.New("key not found in cache")
