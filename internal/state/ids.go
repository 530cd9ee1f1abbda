package state

import (
	"github.com/google/uuid"
)

// NewID returns a unique, time-ordered identifier for a stroke.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}
