package clip

import "github.com/google/uuid"

// NewID returns a fresh clip id.
func NewID() string {
	return uuid.NewString()
}
