package transfer

import "errors"

var (
	// ErrInvalidDocument is returned for import documents without groups or keyvalues.
	ErrInvalidDocument = errors.New("invalid import file format")
	// ErrEmptyCSV is returned for csv documents without a header row.
	ErrEmptyCSV = errors.New("csv document has no header")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
