package http

import (
	"github.com/fasthttp/router"
)

// Router registers service-wide HTTP routes
type Router struct {
	health *HealthHandler
}

// NewRouter creates a new router
func NewRouter(health *HealthHandler) *Router {
	return &Router{health: health}
}

// RegisterRoutes registers routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/health", r.health.Handle)
}
