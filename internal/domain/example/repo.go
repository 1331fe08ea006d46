package example

import (
	"context"

	"querykit/internal/domain"
)

// Repository defines the interface for Example persistence.
type Repository interface {
	domain.CriteriaRepository[*Example]

	// FindMostPopular returns the example ranked first by name, descending.
	FindMostPopular(ctx context.Context) (*Example, error)
}
