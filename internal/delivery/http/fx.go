package http

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/repository/http_clients/tmdb"
	"github.com/Conte777/MovieFlow/internal/infrastructure/http/server"
)

// Module provides service-wide HTTP handlers for fx DI
var Module = fx.Module("http-delivery",
	fx.Provide(
		func(db *gorm.DB) (DatabasePinger, error) { return db.DB() },
		func(c *tmdb.Client) CatalogHealthChecker { return c },
		NewHealthHandler,
		NewRouter,
	),
	fx.Invoke(func(r *Router, srv *server.Server) {
		r.RegisterRoutes(srv.Router)
	}),
)
