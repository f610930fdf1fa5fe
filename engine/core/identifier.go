package core

import "github.com/google/uuid"

// NewID returns a fresh identifier for entities and cameras created without one.
func NewID() string {
	return uuid.NewString()
}

// IsGeneratedID reports whether id has the shape of an identifier produced by NewID.
func IsGeneratedID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
