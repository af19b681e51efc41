package utils

import "github.com/google/uuid"

// NewID returns a random unique identifier for stored records.
func NewID() string {
	return uuid.NewString()
}
