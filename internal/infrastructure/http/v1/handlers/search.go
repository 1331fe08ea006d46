package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/domain"
	"querykit/internal/domain/criteria"
	"querykit/internal/infrastructure/http/v1/dto"
	"querykit/internal/metadata"
)

// SearchService is what a SearchHandler needs from the domain layer.
type SearchService[T any] interface {
	Search(ctx context.Context, c criteria.Criteria) (domain.ListResult[T], error)
	GetByID(ctx context.Context, entityID id.ID) (T, error)
}

// SearchHandler provides generic list and lookup handlers for a searchable entity.
type SearchHandler[T any] struct {
	*BaseHandler
	service  SearchService[T]
	entity   metadata.EntityDef
	mapToDTO func(entity T) any
}

// SearchHandlerConfig configures the search handler.
type SearchHandlerConfig[T any] struct {
	Service SearchService[T]

	// Entity lists the fields that filters and orders may reference.
	Entity   metadata.EntityDef
	MapToDTO func(entity T) any
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler[T any](base *BaseHandler, cfg SearchHandlerConfig[T]) *SearchHandler[T] {
	return &SearchHandler[T]{
		BaseHandler: base,
		service:     cfg.Service,
		entity:      cfg.Entity,
		mapToDTO:    cfg.MapToDTO,
	}
}

// List handles GET /{entity} - search with filters, ordering and pagination.
func (h *SearchHandler[T]) List(c *gin.Context) {
	var req dto.SearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	crit, err := req.ToCriteria()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.entity.ValidateCriteria(crit); err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Search(c.Request.Context(), crit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = h.mapToDTO(item)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *SearchHandler[T]) Get(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(entity))
}
