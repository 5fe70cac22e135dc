// Package movie contains the movie browsing domain module
package movie

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	favbusiness "github.com/Conte777/MovieFlow/internal/domain/favorites/usecase/business"
	telegramDelivery "github.com/Conte777/MovieFlow/internal/domain/movie/delivery/telegram"
	"github.com/Conte777/MovieFlow/internal/domain/movie/deps"
	"github.com/Conte777/MovieFlow/internal/domain/movie/usecase/business"
	notifbusiness "github.com/Conte777/MovieFlow/internal/domain/notification/usecase/business"
	"github.com/Conte777/MovieFlow/internal/domain/session"
	"github.com/Conte777/MovieFlow/internal/infrastructure/telegram"
)

// Module provides movie browsing components for fx dependency injection
var Module = fx.Module("movie",
	fx.Provide(func(s *session.Store) deps.SessionStore { return s }),
	fx.Provide(func(g *session.RateGate) deps.RateGate { return g }),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(
	uc *business.UseCase,
	favorites *favbusiness.UseCase,
	bot *telegram.Bot,
	logger zerolog.Logger,
) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, favorites, bot.Raw(), logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	broadcaster *notifbusiness.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
) {
	// Handlers implements notification deps.MessageSender
	// This resolves the cyclic dependency: broadcast UseCase -> MessageSender <- Handlers
	broadcaster.SetSender(handlers)

	router.RegisterRoutes(bot)
}
