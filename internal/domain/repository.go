// Package domain provides the repository contract and list results shared by
// every searchable entity.
package domain

import (
	"context"

	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
)

// ListResult contains one page and the total number of matches.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CriteriaRepository is implemented by repositories that search by criteria.
type CriteriaRepository[T any] interface {
	// FindByCriteria returns the entities matching c, sorted and paginated as c says.
	FindByCriteria(ctx context.Context, c criteria.Criteria) ([]T, error)

	// CountByCriteria returns the number of entities matching c's filters.
	// Limit and offset never affect the count.
	CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error)

	// FindByID retrieves a single entity.
	FindByID(ctx context.Context, id id.ID) (T, error)
}
