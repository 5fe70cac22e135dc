package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
)

// Inline button labels
const (
	ButtonShowMore     = "Посмотреть ещё 🎥"
	ButtonSearchMore   = "🔎 Посмотреть ещё"
	ButtonInlineBack   = "🔙 Назад"
	ButtonAddFavorite  = "⭐ В избранное"
	ButtonRemoveFav    = "🗑 Удалить из избранного"
	ButtonNotifyOff    = "🔕 Отключить уведомления"
	ButtonNotifyOn     = "🔔 Включить уведомления"
	genreKeyboardWidth = 2
)

// GenreKeyboard is the main reply keyboard: genres two per row, then the listings and favorites
func GenreKeyboard() *models.ReplyKeyboardMarkup {
	genres := entities.Genres()
	rows := make([][]models.KeyboardButton, 0, len(genres)/genreKeyboardWidth+3)

	for i := 0; i < len(genres); i += genreKeyboardWidth {
		end := min(i+genreKeyboardWidth, len(genres))
		row := make([]models.KeyboardButton, 0, genreKeyboardWidth)
		for _, g := range genres[i:end] {
			row = append(row, models.KeyboardButton{Text: string(g)})
		}
		rows = append(rows, row)
	}

	rows = append(rows,
		[]models.KeyboardButton{
			{Text: dto.ButtonTopRated},
			{Text: dto.ButtonTrending},
			{Text: dto.ButtonNewReleases},
		},
		[]models.KeyboardButton{{Text: dto.ButtonFavorites}},
	)

	return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

// BackKeyboard offers only the way back to the genre keyboard
func BackKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       [][]models.KeyboardButton{{{Text: dto.ButtonBack}}},
		ResizeKeyboard: true,
	}
}

// MoreKeyboard pages the active category
func MoreKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: ButtonShowMore, CallbackData: dto.CallbackShowMore}},
		{{Text: ButtonInlineBack, CallbackData: dto.CallbackBack}},
	}}
}

// SearchMoreKeyboard pages the stored search
func SearchMoreKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: ButtonSearchMore, CallbackData: dto.CallbackSearchMore}},
	}}
}

// AddFavoriteKeyboard is attached to every preview
func AddFavoriteKeyboard(movieID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: ButtonAddFavorite, CallbackData: dto.AddFavoriteData(movieID)}},
	}}
}

// RemoveFavoriteKeyboard is attached to every listed favorite
func RemoveFavoriteKeyboard(movieID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: ButtonRemoveFav, CallbackData: dto.RemoveFavoriteData(movieID)}},
	}}
}

// NotificationKeyboard offers the opposite of the current setting
func NotificationKeyboard(enabled bool) *models.InlineKeyboardMarkup {
	text := ButtonNotifyOn
	if enabled {
		text = ButtonNotifyOff
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: text, CallbackData: dto.CallbackToggleNotifications}},
	}}
}
