package domain

import (
	"context"
	"fmt"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/core/tx"
	"querykit/internal/domain/criteria"
	"querykit/pkg/logger"
)

// SearchService provides criteria search over one entity type.
type SearchService[T any] struct {
	repo      CriteriaRepository[T]
	txManager tx.ReadOnlyManager // optional; page and count share a snapshot when set

	entityName string
	maxLimit   uint64
}

// SearchServiceConfig configures the search service.
type SearchServiceConfig[T any] struct {
	Repo       CriteriaRepository[T]
	TxManager  tx.ReadOnlyManager
	EntityName string

	// MaxLimit caps Criteria.Limit when set. Unbounded criteria stay unbounded.
	MaxLimit uint64
}

// NewSearchService creates a new search service.
func NewSearchService[T any](cfg SearchServiceConfig[T]) *SearchService[T] {
	return &SearchService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		entityName: cfg.EntityName,
		maxLimit:   cfg.MaxLimit,
	}
}

// Search returns the page selected by c and the total number of matches.
func (s *SearchService[T]) Search(ctx context.Context, c criteria.Criteria) (ListResult[T], error) {
	if err := c.Validate(); err != nil {
		return ListResult[T]{}, err
	}
	if s.maxLimit > 0 && c.Limit > s.maxLimit {
		c = c.WithLimit(s.maxLimit)
	}

	result := ListResult[T]{
		Limit:  int(c.Limit),
		Offset: int(c.Offset),
	}

	run := func(ctx context.Context) error {
		items, err := s.repo.FindByCriteria(ctx, c)
		if err != nil {
			return fmt.Errorf("find %s: %w", s.entityName, err)
		}
		total, err := s.repo.CountByCriteria(ctx, c)
		if err != nil {
			return fmt.Errorf("count %s: %w", s.entityName, err)
		}
		result.Items = items
		result.TotalCount = total
		return nil
	}

	var err error
	if s.txManager != nil {
		err = s.txManager.ReadOnly(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return ListResult[T]{}, s.normalizeErr(err)
	}

	if result.Items == nil {
		result.Items = []T{}
	}

	logger.Debug(ctx, "criteria search",
		"entity", s.entityName,
		"filters", len(c.Filters),
		"returned", len(result.Items),
		"total", result.TotalCount,
	)

	return result, nil
}

// GetByID retrieves a single entity.
func (s *SearchService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.FindByID(ctx, entityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return entity, apperror.NewNotFound(s.entityName, entityID.String())
		}
		return entity, s.normalizeErr(err)
	}
	return entity, nil
}

// normalizeErr keeps AppErrors (translation failures, not found) and hides
// everything else behind an internal error.
func (s *SearchService[T]) normalizeErr(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName)
}
