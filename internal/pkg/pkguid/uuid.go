package pkguid

import "github.com/google/uuid"

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// UUID generates time-ordered RFC 9562 UUID strings.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a UUIDv7 string, or a random v4 when no v7 can be made.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
