// Package id provides the UUIDv7 identifiers used by stored entities.
package id

import (
	"github.com/google/uuid"
)

// ID is the primary key type of every entity.
type ID = uuid.UUID

// Nil is the zero ID.
var Nil = uuid.Nil

// New returns a time-ordered UUIDv7, so ORDER BY id follows insertion order.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// IsNil reports whether v is the zero ID.
func IsNil(v ID) bool {
	return v == uuid.Nil
}
