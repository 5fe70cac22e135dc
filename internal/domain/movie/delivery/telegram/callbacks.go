package telegram

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	favdto "github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
	moverrors "github.com/Conte777/MovieFlow/internal/domain/movie/errors"
)

// callback is a decoded inline button press
type callback struct {
	id        string
	userID    int64
	username  string
	chatID    int64
	messageID int
}

func newCallback(cq *models.CallbackQuery) callback {
	c := callback{
		id:       cq.ID,
		userID:   cq.From.ID,
		username: cq.From.Username,
		chatID:   cq.From.ID,
	}

	switch {
	case cq.Message.Message != nil:
		c.chatID = cq.Message.Message.Chat.ID
		c.messageID = cq.Message.Message.ID
	case cq.Message.InaccessibleMessage != nil:
		c.chatID = cq.Message.InaccessibleMessage.Chat.ID
		c.messageID = cq.Message.InaccessibleMessage.MessageID
	}

	return c
}

// HandleCallback handles every inline button press
func (h *Handlers) HandleCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	cb := newCallback(update.CallbackQuery)

	action, err := dto.ParseCallback(update.CallbackQuery.Data)
	if err != nil {
		h.logger.Warn().Int64("user_id", cb.userID).Str("data", update.CallbackQuery.Data).Msg("Unknown callback payload")
		h.answer(ctx, cb, UserMessage(err))
		return
	}

	switch action.Kind {
	case dto.ActionShowMore:
		h.handleMore(ctx, cb, func() (*dto.PresentationBatch, error) {
			return h.browser.ShowMore(ctx, cb.chatID, cb.userID)
		})
	case dto.ActionSearchMore:
		h.handleMore(ctx, cb, func() (*dto.PresentationBatch, error) {
			return h.browser.SearchMore(ctx, cb.chatID)
		})
	case dto.ActionAddFavorite:
		h.handleAddFavorite(ctx, cb, action.MovieID)
	case dto.ActionRemoveFavorite:
		h.handleRemoveFavorite(ctx, cb, action.MovieID)
	case dto.ActionToggleNotifications:
		h.handleToggleNotifications(ctx, cb)
	case dto.ActionBack:
		h.browser.StartBrowsing(ctx, cb.chatID)
		h.answer(ctx, cb, "")
		h.reply(ctx, cb.chatID, MsgChooseAgain, GenreKeyboard())
	default:
		h.answer(ctx, cb, UserMessage(moverrors.ErrUnknownAction))
	}
}

// handleMore pages a listing; a rate-limited press only gets a toast
func (h *Handlers) handleMore(ctx context.Context, cb callback, next func() (*dto.PresentationBatch, error)) {
	batch, err := next()
	if err != nil {
		h.answer(ctx, cb, UserMessage(err))
		if !errors.Is(err, moverrors.ErrRateLimited) {
			h.reply(ctx, cb.chatID, UserMessage(err), nil)
		}
		return
	}

	h.answer(ctx, cb, "")
	h.clearKeyboard(ctx, cb)
	h.sendBatch(ctx, cb.chatID, batch)
}

func (h *Handlers) handleAddFavorite(ctx context.Context, cb callback, movieID int64) {
	movie, err := h.browser.ResolvePresented(ctx, cb.chatID, movieID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", cb.userID).Int64("movie_id", movieID).Msg("Failed to resolve favorited movie")
		h.answer(ctx, cb, UserMessage(err))
		return
	}

	outcome, err := h.favorites.Add(ctx, cb.userID, cb.username, favdto.FavoriteItem{
		MovieID:   movie.ID,
		Title:     movie.Title,
		Overview:  movie.Overview,
		PosterURL: movie.PosterURL,
	})

	text := MsgFavoriteAdded
	if outcome != favdto.AddOutcomeAdded {
		text = UserMessage(err)
	}

	h.answer(ctx, cb, "")
	h.reply(ctx, cb.chatID, text, nil)
}

func (h *Handlers) handleRemoveFavorite(ctx context.Context, cb callback, movieID int64) {
	removed, err := h.favorites.Remove(ctx, cb.userID, movieID)
	if err != nil {
		h.answer(ctx, cb, UserMessage(err))
		return
	}

	if !removed {
		h.answer(ctx, cb, MsgFavoriteNotRemoved)
		return
	}

	h.deleteMessage(ctx, cb)
	h.answer(ctx, cb, MsgFavoriteRemoved)
}

func (h *Handlers) handleToggleNotifications(ctx context.Context, cb callback) {
	enabled, err := h.favorites.ToggleNotifications(ctx, cb.userID)
	if err != nil {
		h.answer(ctx, cb, UserMessage(err))
		return
	}

	h.editKeyboard(ctx, cb, NotificationKeyboard(enabled))
	h.answer(ctx, cb, notificationToast(enabled))
}

// answer acknowledges the button press, optionally with a toast
func (h *Handlers) answer(ctx context.Context, cb callback, text string) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := h.bot.AnswerCallbackQuery(reqCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.id,
		Text:            text,
	}); err != nil {
		h.logger.Warn().Err(err).Int64("user_id", cb.userID).Msg("Failed to answer callback query")
	}
}

// clearKeyboard removes the inline keyboard of the pressed message so stale buttons disappear
func (h *Handlers) clearKeyboard(ctx context.Context, cb callback) {
	h.editKeyboard(ctx, cb, nil)
}

func (h *Handlers) editKeyboard(ctx context.Context, cb callback, markup *models.InlineKeyboardMarkup) {
	if cb.messageID == 0 {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	params := &tgbot.EditMessageReplyMarkupParams{
		ChatID:    cb.chatID,
		MessageID: cb.messageID,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := h.bot.EditMessageReplyMarkup(reqCtx, params); err != nil {
		h.logger.Warn().Err(err).Int64("chat_id", cb.chatID).Msg("Failed to edit message keyboard")
	}
}

func (h *Handlers) deleteMessage(ctx context.Context, cb callback) {
	if cb.messageID == 0 {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := h.bot.DeleteMessage(reqCtx, &tgbot.DeleteMessageParams{
		ChatID:    cb.chatID,
		MessageID: cb.messageID,
	}); err != nil {
		h.logger.Warn().Err(err).Int64("chat_id", cb.chatID).Msg("Failed to delete message")
	}
}
