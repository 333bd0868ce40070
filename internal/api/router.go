// Package api exposes the todolist store over HTTP/JSON with gin.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Options configures the router beyond its store.
type Options struct {
	// Logger receives one access-log line per request and any store error
	// that turns into a 500. Nil disables logging.
	Logger *zap.Logger

	// RateLimit, when non-nil, runs before every route.
	RateLimit gin.HandlerFunc
}

// NewRouter builds the HTTP router. The store is the single process-wide
// handle; every request gets its own Session from it.
func NewRouter(store types.Store, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), Recovery(logger))
	if opts.RateLimit != nil {
		router.Use(opts.RateLimit)
	}

	h := NewHandler(store, logger)

	router.GET("/healthz", h.Health)

	items := router.Group("/items")
	items.Use(WithSession(store, logger))
	{
		items.POST("/", h.CreateItem)
		items.GET("/", h.ListItems)
		items.GET("/urgent", h.ListUrgentItems)
		items.GET("/urgent/", h.ListUrgentItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}

	teams := router.Group("/teams")
	teams.Use(WithSession(store, logger))
	{
		teams.POST("/", h.CreateTeam)
		teams.GET("/", h.ListTeams)
		teams.GET("/:id", h.GetTeam)
		teams.PATCH("/:id", h.UpdateTeam)
		teams.DELETE("/:id", h.DeleteTeam)
	}

	return router
}
