// Package entity provides the fields shared by every persisted entity.
package entity

import (
	"time"

	"querykit/internal/core/id"
)

// Base contains common fields for all entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with a generated ID and current timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the entity ID.
func (b Base) GetID() id.ID {
	return b.ID
}
