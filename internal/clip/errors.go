package clip

import "errors"

// Clip errors.
var (
	// ErrNotFound indicates no clip has the requested id.
	ErrNotFound = errors.New("clip not found")

	// ErrDuplicateID indicates a clip id is already in the collection.
	ErrDuplicateID = errors.New("duplicate clip id")

	// ErrUnknownKind indicates an unrecognized clip type name.
	ErrUnknownKind = errors.New("unknown clip kind")
)
