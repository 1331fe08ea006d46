package example

import (
	"context"

	"querykit/internal/core/apperror"
	"querykit/internal/core/tx"
	"querykit/internal/domain"
)

// DefaultMaxLimit caps page size for example searches.
const DefaultMaxLimit = 1000

// Service provides search over examples.
// Uses composition with domain.SearchService for criteria search.
type Service struct {
	*domain.SearchService[*Example]
	repo Repository
}

// NewService creates a new Example service. txm may be nil.
func NewService(repo Repository, txm tx.ReadOnlyManager) *Service {
	base := domain.NewSearchService(domain.SearchServiceConfig[*Example]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: EntityName,
		MaxLimit:   DefaultMaxLimit,
	})

	return &Service{
		SearchService: base,
		repo:          repo,
	}
}

// MostPopular returns the top-ranked example.
func (s *Service) MostPopular(ctx context.Context) (*Example, error) {
	e, err := s.repo.FindMostPopular(ctx)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err).WithDetail("entity", EntityName)
	}
	return e, nil
}
