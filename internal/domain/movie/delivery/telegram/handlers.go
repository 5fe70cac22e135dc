// Package telegram contains Telegram delivery handlers for browsing and favorites
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	favdto "github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	faventities "github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
)

// Constants for Telegram API
const (
	MessageSplitTimeout = 2 * time.Second
	RequestTimeout      = 30 * time.Second
)

// Browser is the browsing use case
type Browser interface {
	StartBrowsing(ctx context.Context, chatID int64)
	BeginSearch(ctx context.Context, chatID int64)
	AwaitingQuery(chatID int64) bool
	SelectCategory(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error)
	ShowMore(ctx context.Context, chatID, userID int64) (*dto.PresentationBatch, error)
	Search(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error)
	SearchMore(ctx context.Context, chatID int64) (*dto.PresentationBatch, error)
	ResolvePresented(ctx context.Context, chatID, movieID int64) (*entities.Movie, error)
}

// Favorites is the favorites use case
type Favorites interface {
	EnsureUser(ctx context.Context, userID int64, username string) error
	Add(ctx context.Context, userID int64, username string, item favdto.FavoriteItem) (favdto.AddOutcome, error)
	Remove(ctx context.Context, userID, movieID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]faventities.Favorite, error)
	ToggleNotifications(ctx context.Context, userID int64) (bool, error)
	NotificationsEnabled(ctx context.Context, userID int64) (bool, error)
}

// Handlers contains Telegram command handlers
// Implements notification deps.MessageSender interface
type Handlers struct {
	browser   Browser
	favorites Favorites
	bot       *tgbot.Bot
	logger    zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(browser Browser, favorites Favorites, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		browser:   browser,
		favorites: favorites,
		bot:       bot,
		logger:    logger.With().Str("component", "telegram-handlers").Logger(),
	}
}

// SendHTML implements notification deps.MessageSender interface
func (h *Handlers) SendHTML(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		h.logger.Warn().Int64("chat_id", chatID).Msg("Attempt to send empty message")
		return fmt.Errorf("message text cannot be empty")
	}

	if len(text) > MaxMessageLength {
		return h.sendSplitMessage(ctx, chatID, text)
	}

	return h.sendSingleMessage(ctx, chatID, text, nil)
}

// HandleStart handles /start command: registers the user and shows the genre keyboard
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/start", "processing")

	if err := h.favorites.EnsureUser(ctx, userID, update.Message.From.Username); err != nil {
		h.logError(userID, "/start", err)
		h.reply(ctx, chatID, UserMessage(err), nil)
		return
	}

	h.browser.StartBrowsing(ctx, chatID)
	h.reply(ctx, chatID, MsgWelcome, GenreKeyboard())
	h.logCommand(userID, "/start", "success")
}

// HandleSearch handles /search: an inline query runs at once, otherwise the next text is the query
func (h *Handlers) HandleSearch(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	query := searchArgument(update.Message.Text)
	if query == "" {
		h.browser.BeginSearch(ctx, chatID)
		h.reply(ctx, chatID, MsgSearchPrompt, nil)
		h.logCommand(userID, "/search", "prompted")
		return
	}

	h.search(ctx, chatID, query)
	h.logCommand(userID, "/search", "inline")
}

// HandleNotifications handles /notifications: shows the setting with a toggle button
func (h *Handlers) HandleNotifications(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	enabled, err := h.favorites.NotificationsEnabled(ctx, userID)
	if err != nil {
		h.logError(userID, "/notifications", err)
		h.reply(ctx, chatID, UserMessage(err), nil)
		return
	}

	h.reply(ctx, chatID, notificationStatus(enabled), NotificationKeyboard(enabled))
	h.logCommand(userID, "/notifications", "success")
}

// HandleText handles plain text: menu buttons, genre labels and pending search queries
func (h *Handlers) HandleText(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if strings.HasPrefix(text, "/") {
		h.reply(ctx, chatID, MsgUnknownCommand, nil)
		return
	}

	action := dto.ParseText(text)
	if action.Kind == dto.ActionUnknown && h.browser.AwaitingQuery(chatID) {
		h.search(ctx, chatID, text)
		return
	}

	switch action.Kind {
	case dto.ActionSelectCategory:
		batch, err := h.browser.SelectCategory(ctx, chatID, action.Category)
		if err != nil {
			h.reply(ctx, chatID, UserMessage(err), nil)
			return
		}
		h.sendBatch(ctx, chatID, batch)
	case dto.ActionListFavorites:
		var userID int64
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		h.sendFavorites(ctx, chatID, userID)
	case dto.ActionBack:
		h.browser.StartBrowsing(ctx, chatID)
		h.reply(ctx, chatID, MsgChooseAgain, GenreKeyboard())
	default:
		h.reply(ctx, chatID, MsgChooseFromKeyboard, GenreKeyboard())
	}
}

func (h *Handlers) search(ctx context.Context, chatID int64, query string) {
	batch, err := h.browser.Search(ctx, chatID, query)
	if err != nil {
		h.reply(ctx, chatID, UserMessage(err), nil)
		return
	}
	h.sendBatch(ctx, chatID, batch)
}

// searchArgument returns the text after /search, also in the /search@bot form
func searchArgument(text string) string {
	rest := strings.TrimPrefix(text, "/search")
	if strings.HasPrefix(rest, "@") {
		_, rest, _ = strings.Cut(rest, " ")
	}
	return strings.TrimSpace(rest)
}

func (h *Handlers) reply(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	if err := h.sendSingleMessage(ctx, chatID, text, markup); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

func (h *Handlers) sendSingleMessage(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		handledErr := h.handleSendMessageError(chatID, err)
		h.logMessageSend(chatID, len(text), false, handledErr)
		return handledErr
	}

	h.logMessageSend(chatID, len(text), true, nil)
	return nil
}

func (h *Handlers) sendSplitMessage(ctx context.Context, chatID int64, text string) error {
	h.logger.Info().Int64("chat_id", chatID).Int("total_length", len(text)).Msg("Splitting long message into parts")

	parts := splitMessage(text)
	totalParts := len(parts)
	successCount := 0

	for i, part := range parts {
		partNumber := i + 1

		if err := h.sendSingleMessage(ctx, chatID, part, nil); err != nil {
			h.logger.Error().Int64("chat_id", chatID).Int("part", partNumber).Int("total_parts", totalParts).Err(err).Msg("Failed to send message part")
			continue
		}

		successCount++

		if partNumber < totalParts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(MessageSplitTimeout):
			}
		}
	}

	if successCount == 0 {
		return fmt.Errorf("failed to send all message parts")
	}

	if successCount < totalParts {
		return fmt.Errorf("sent only %d out of %d message parts", successCount, totalParts)
	}

	return nil
}

// errBlocked is returned when the recipient blocked the bot or the chat is gone
var errBlocked = errors.New("user blocked the bot or chat not found")

func (h *Handlers) handleSendMessageError(chatID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"), strings.Contains(errorMsg, "chat not found"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("User blocked the bot or chat not found")
		return fmt.Errorf("%w: %v", errBlocked, err)

	case strings.Contains(errorMsg, "Too Many Requests"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("Rate limit exceeded")
		return fmt.Errorf("rate limit exceeded: %w", err)

	default:
		return fmt.Errorf("failed to send message: %w", err)
	}
}

// logMessageSend logs message send result
func (h *Handlers) logMessageSend(chatID int64, length int, success bool, err error) {
	logEvent := h.logger.Debug()
	if !success {
		logEvent = h.logger.Error()
	}

	logEvent.Int64("chat_id", chatID).Int("message_length", length).Bool("success", success)

	if err != nil {
		logEvent.Err(err)
	}

	logEvent.Msg("Message send attempt completed")
}

// logCommand logs command processing
func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

// logError logs command errors
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}
