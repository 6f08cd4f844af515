package timeline

import "errors"

// Surface errors.
var (
	// ErrMissingCallback indicates a required host callback is nil.
	ErrMissingCallback = errors.New("missing callback")

	// ErrAlreadyMounted indicates Mount was called on a mounted surface.
	ErrAlreadyMounted = errors.New("surface already mounted")
)
