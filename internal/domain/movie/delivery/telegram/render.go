package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
)

// sendBatch renders previews followed by the paging footer
func (h *Handlers) sendBatch(ctx context.Context, chatID int64, batch *dto.PresentationBatch) {
	if len(batch.Items) == 0 {
		if batch.Source == dto.SourceSearch {
			h.reply(ctx, chatID, nothingFoundFor(batch.Query), nil)
			return
		}
		h.reply(ctx, chatID, MsgNothingFound, nil)
		return
	}

	for _, m := range batch.Items {
		h.sendPreview(ctx, chatID, m.Caption(), m.PosterURL, AddFavoriteKeyboard(m.ID))
	}

	text, markup := footer(batch)
	h.reply(ctx, chatID, text, markup)
}

// footer picks the closing message and keyboard of a batch
func footer(batch *dto.PresentationBatch) (string, models.ReplyMarkup) {
	if batch.Source == dto.SourceSearch {
		if !batch.HasMore {
			return MsgChooseAgain, GenreKeyboard()
		}
		if batch.Page > 1 {
			return MsgMoreSearchNext, SearchMoreKeyboard()
		}
		return MsgMoreSearch, SearchMoreKeyboard()
	}

	if batch.HasMore {
		return MsgMoreCategory, MoreKeyboard()
	}

	switch batch.Category {
	case entities.CategoryTopRated:
		return MsgTopRated, BackKeyboard()
	case entities.CategoryTrending:
		return MsgTrending, BackKeyboard()
	case entities.CategoryNewReleases:
		return MsgNewReleases, GenreKeyboard()
	default:
		return MsgChooseAgain, GenreKeyboard()
	}
}

// sendFavorites lists the user's favorites, each with a delete button
func (h *Handlers) sendFavorites(ctx context.Context, chatID, userID int64) {
	favorites, err := h.favorites.List(ctx, userID)
	if err != nil {
		h.reply(ctx, chatID, UserMessage(err), nil)
		return
	}

	if len(favorites) == 0 {
		h.reply(ctx, chatID, MsgFavoritesEmpty, BackKeyboard())
		return
	}

	for _, f := range favorites {
		caption := entities.Movie{Title: f.MovieTitle, Overview: f.MovieOverview}.SavedCaption()
		h.sendPreview(ctx, chatID, caption, f.PosterURL, RemoveFavoriteKeyboard(f.MovieID))
	}

	h.reply(ctx, chatID, MsgFavoritesFooter, BackKeyboard())
}

// sendPreview sends a poster with caption, or the caption alone when there is no poster
// or the poster is rejected
func (h *Handlers) sendPreview(ctx context.Context, chatID int64, caption, posterURL string, markup *models.InlineKeyboardMarkup) {
	if posterURL != "" {
		reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		_, err := h.bot.SendPhoto(reqCtx, &tgbot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: posterURL},
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		cancel()
		if err == nil {
			return
		}
		h.logger.Warn().Err(err).Int64("chat_id", chatID).Str("poster", posterURL).Msg("Failed to send poster, falling back to text")
	}

	if err := h.sendSingleMessage(ctx, chatID, caption, markup); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send preview")
	}
}
