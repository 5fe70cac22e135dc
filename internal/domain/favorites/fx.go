// Package favorites contains the favorites domain module
package favorites

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/internal/domain/favorites/deps"
	kafkaRepo "github.com/Conte777/MovieFlow/internal/domain/favorites/repository/kafka"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/repository/postgres"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/usecase/business"
)

// Module provides favorites domain components for fx dependency injection
var Module = fx.Module("favorites",
	// Repository
	fx.Provide(postgres.NewRepository),
	fx.Provide(func(r *postgres.Repository) deps.FavoritesRepository { return r }),
	fx.Provide(kafkaRepo.NewProducer),

	// UseCase
	fx.Provide(business.NewUseCase),

	fx.Invoke(registerProducerLifecycle),
)

func registerProducerLifecycle(lc fx.Lifecycle, producer deps.FavoriteEventProducer, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info().Msg("Closing favorites event producer")
			return producer.Close()
		},
	})
}
