package tasks

import "github.com/google/uuid"

const idPrefix = "t_"

// NewID returns a fresh task identifier. UUIDv7 puts a millisecond timestamp
// in front of random bits, so ids are unique and roughly creation-ordered.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return idPrefix + uuid.NewString()
	}
	return idPrefix + id.String()
}
