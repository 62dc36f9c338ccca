package uid

import "github.com/google/uuid"

// UUID generates time-ordered version 7 UUIDs.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate falls back to a random version 4 UUID if the v7 source fails.
func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
