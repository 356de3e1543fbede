package entry

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrEntryNotFound is returned when an entry is not found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrKeyNameEmpty is returned when saving an entry without a key name.
	ErrKeyNameEmpty = errors.New("key name cannot be empty")
	// ErrEntryAlreadyExists is returned when the group already holds an entry with the key name.
	ErrEntryAlreadyExists = errors.New("entry with this key already exists in the group")
	// ErrUnknownGroup is returned when the entry references a group that does not exist.
	ErrUnknownGroup = errors.New("entry references an unknown group")
	// ErrInvalidValueType is returned for unsupported value types.
	ErrInvalidValueType = errors.New("invalid value type")
	// ErrNoIDs is returned by SetStatus without ids.
	ErrNoIDs = errors.New("no entry ids given")
)
