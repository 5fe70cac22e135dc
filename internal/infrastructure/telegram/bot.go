// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

const commandsTimeout = 10 * time.Second

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot    *tgbot.Bot
	logger zerolog.Logger

	mu       sync.RWMutex
	fallback tgbot.HandlerFunc
	commands []models.BotCommand
}

// NewBot creates a new Telegram bot wrapper
func NewBot(token string, logger zerolog.Logger, opts ...tgbot.Option) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	b := &Bot{
		logger: logger.With().Str("component", "telegram-bot").Logger(),
	}

	opts = append([]tgbot.Option{tgbot.WithDefaultHandler(b.defaultHandler)}, opts...)

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	b.logger.Info().Msg("Telegram bot created successfully")

	return b, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// SetFallback sets the handler for updates no registered handler matched
func (b *Bot) SetFallback(h tgbot.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fallback = h
}

// SetCommands sets the command menu published on start
func (b *Bot) SetCommands(commands []models.BotCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = commands
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.publishCommands(ctx)

	b.logger.Info().Msg("Starting Telegram bot...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

func (b *Bot) publishCommands(ctx context.Context) {
	b.mu.RLock()
	commands := b.commands
	b.mu.RUnlock()

	if len(commands) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, commandsTimeout)
	defer cancel()

	if _, err := b.bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish bot commands")
		return
	}

	b.logger.Info().Int("commands", len(commands)).Msg("Bot commands published")
}

// defaultHandler delegates to the fallback set by the delivery layer
func (b *Bot) defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	b.mu.RLock()
	fallback := b.fallback
	b.mu.RUnlock()

	if fallback != nil {
		fallback(ctx, bot, update)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	_, _ = bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🤖 Используйте команды для взаимодействия с ботом. Напишите /start, чтобы начать.",
	})
}
