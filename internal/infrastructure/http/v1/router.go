// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"querykit/internal/domain/example"
	"querykit/internal/infrastructure/http/v1/handlers"
	"querykit/internal/infrastructure/http/v1/middleware"
	"querykit/internal/metadata"
	"querykit/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// DB backs the readiness probe and pool stats.
	DB handlers.DatabaseProbe

	// Logger for request logging
	Logger *logger.Logger

	ExampleService handlers.ExampleService

	// MetadataRegistry stores entity definitions; filters are checked against it.
	MetadataRegistry *metadata.Registry

	Version string
}

// SearchRouteHandler is implemented by every searchable entity handler.
type SearchRouteHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	if cfg.DB != nil {
		healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Version)
		health := router.Group("/health")
		{
			health.GET("/live", healthHandler.Live)
			health.GET("/ready", healthHandler.Ready)
			health.GET("/info", healthHandler.Info)
		}
	}

	v1 := router.Group("/api/v1")
	{
		registerExampleRoutes(v1, cfg)
		registerMetaRoutes(v1, cfg)
	}

	return router
}

// RegisterSearchRoutes registers the list and lookup routes of an entity.
func RegisterSearchRoutes(group *gin.RouterGroup, handler SearchRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
}

func registerExampleRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.ExampleService == nil || cfg.MetadataRegistry == nil {
		return
	}
	def, ok := cfg.MetadataRegistry.Get(example.EntityName)
	if !ok {
		return
	}

	handler := handlers.NewExampleHandler(handlers.NewBaseHandler(), cfg.ExampleService, def)
	examples := rg.Group("/examples")
	examples.GET("/most-popular", handler.MostPopular)
	RegisterSearchRoutes(examples, handler)
}

// registerMetaRoutes registers metadata/schema endpoints.
func registerMetaRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.MetadataRegistry == nil {
		return
	}

	handler := handlers.NewMetadataHandler(handlers.NewBaseHandler(), cfg.MetadataRegistry)
	meta := rg.Group("/meta")
	{
		meta.GET("", handler.ListEntities)
		meta.GET("/:name", handler.GetEntity)
	}
}
