package group

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupNameEmpty is returned when saving a group without a name.
	ErrGroupNameEmpty = errors.New("group name cannot be empty")
	// ErrGroupCodeEmpty is returned when saving a group without a code.
	ErrGroupCodeEmpty = errors.New("group code cannot be empty")
	// ErrGroupCodeExists is returned when another group already uses the code.
	ErrGroupCodeExists = errors.New("group code already exists")
	// ErrNoIDs is returned by SetStatus without ids.
	ErrNoIDs = errors.New("no group ids given")
)
