package version

import "errors"

// ErrMalformed is returned by Parse for strings not matching major.minor.patch[+build].
var ErrMalformed = errors.New("malformed version string")
