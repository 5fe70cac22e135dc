// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/config"
	httpDelivery "github.com/Conte777/MovieFlow/internal/delivery/http"
	"github.com/Conte777/MovieFlow/internal/domain"
	"github.com/Conte777/MovieFlow/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, telegram bot, http server)
		infrastructure.Module,

		// Domain (catalog, sessions, favorites, broadcast, browsing)
		domain.Module,

		// Service-wide HTTP endpoints
		httpDelivery.Module,
	)
}
