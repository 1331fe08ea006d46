package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"querykit/internal/domain/example"
	"querykit/internal/infrastructure/http/v1/dto"
	"querykit/internal/metadata"
)

// ExampleService is satisfied by *example.Service.
type ExampleService interface {
	SearchService[*example.Example]
	MostPopular(ctx context.Context) (*example.Example, error)
}

// ExampleHandler serves the example endpoints.
type ExampleHandler struct {
	*SearchHandler[*example.Example]
	service ExampleService
}

// NewExampleHandler creates the example handler.
func NewExampleHandler(base *BaseHandler, service ExampleService, def metadata.EntityDef) *ExampleHandler {
	search := NewSearchHandler(base, SearchHandlerConfig[*example.Example]{
		Service: service,
		Entity:  def,
		MapToDTO: func(e *example.Example) any {
			return dto.FromExample(e)
		},
	})
	return &ExampleHandler{
		SearchHandler: search,
		service:       service,
	}
}

// MostPopular handles GET /examples/most-popular.
func (h *ExampleHandler) MostPopular(c *gin.Context) {
	e, err := h.service.MostPopular(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromExample(e))
}
