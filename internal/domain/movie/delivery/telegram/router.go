package telegram

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/internal/infrastructure/telegram"
)

// Commands is the bot command menu
var Commands = []models.BotCommand{
	{Command: "start", Description: "Начать работу с ботом"},
	{Command: "search", Description: "Поиск фильма по ключевому слову"},
	{Command: "notifications", Description: "Настройки уведомлений"},
}

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all handlers on the bot. Plain text goes to the fallback handler.
func (r *Router) RegisterRoutes(bot *telegram.Bot) {
	raw := bot.Raw()

	raw.RegisterHandlerMatchFunc(matchCommand("start"), r.handlers.HandleStart)
	raw.RegisterHandlerMatchFunc(matchCommand("search"), r.handlers.HandleSearch)
	raw.RegisterHandlerMatchFunc(matchCommand("notifications"), r.handlers.HandleNotifications)
	raw.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, r.handlers.HandleCallback)

	bot.SetFallback(r.handlers.HandleText)
	bot.SetCommands(Commands)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}

// matchCommand matches /command and /command@bot, with or without arguments
func matchCommand(command string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		return commandName(update.Message.Text) == command
	}
}

func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name, _, _ := strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(name, "@")
	return name
}
