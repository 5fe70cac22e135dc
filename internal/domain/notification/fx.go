// Package notification contains the new-release broadcast domain module
package notification

import (
	"go.uber.org/fx"

	catalogdeps "github.com/Conte777/MovieFlow/internal/domain/catalog/deps"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/repository/postgres"
	notifHTTP "github.com/Conte777/MovieFlow/internal/domain/notification/delivery/http"
	"github.com/Conte777/MovieFlow/internal/domain/notification/deps"
	"github.com/Conte777/MovieFlow/internal/domain/notification/usecase/business"
	"github.com/Conte777/MovieFlow/internal/domain/notification/workers"
)

// Module provides notification domain components for fx dependency injection
var Module = fx.Module("notification",
	fx.Provide(func(c catalogdeps.Client) deps.ReleaseSource { return c }),
	fx.Provide(func(r *postgres.Repository) deps.RecipientRepository { return r }),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery - HTTP
	notifHTTP.Module,

	// Workers
	workers.Module,
)
