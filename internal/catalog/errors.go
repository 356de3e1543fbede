package catalog

import "errors"

var (
	// ErrNotFound is returned when the referenced entity does not exist or is not visible.
	ErrNotFound = errors.New("catalog entity not found")

	// ErrUnavailable is returned when the catalog answered with an unexpected status.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrNoImage is returned when a product has no usable image.
	ErrNoImage = errors.New("product has no image")

	// ErrDisabled is returned by Disabled for every lookup.
	ErrDisabled = errors.New("catalog lookups are disabled")
)
