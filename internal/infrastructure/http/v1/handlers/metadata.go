package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"querykit/internal/core/apperror"
	"querykit/internal/metadata"
)

type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// ListEntities returns every searchable entity with its fields.
// GET /api/v1/meta
func (h *MetadataHandler) ListEntities(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// GetEntity returns the fields and operators of one entity.
// GET /api/v1/meta/:name
func (h *MetadataHandler) GetEntity(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("entity", name))
		return
	}
	c.JSON(http.StatusOK, def)
}
