package http

import (
	"github.com/fasthttp/router"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/pkg/httputil"
)

// Router registers notification admin routes
type Router struct {
	handler *Handler
	cfg     *config.ServiceConfig
}

// NewRouter creates a new notification router
func NewRouter(handler *Handler, cfg *config.ServiceConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// RegisterRoutes registers notification routes on the router behind the admin token
func (r *Router) RegisterRoutes(rt *router.Router) {
	if r.cfg.AdminToken == "" {
		r.handler.logger.Warn().Msg("ADMIN_TOKEN is not set, admin routes reject every request")
	}

	admin := httputil.NewMiddlewareGroup(rt.Group("/admin")).
		Use(httputil.RequireBearerToken(r.cfg.AdminToken, r.handler.mapper))
	admin.POST("/broadcast", r.handler.Broadcast)
}
