package telegram

import (
	"errors"
	"fmt"
	"html"

	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	faventities "github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
	moverrors "github.com/Conte777/MovieFlow/internal/domain/movie/errors"
)

// Replies
const (
	MsgWelcome             = "Привет! Выбери жанр фильма 👇"
	MsgChooseAgain         = "Выбери жанр снова 👇"
	MsgChooseFromKeyboard  = "Выбери жанр из списка кнопок ⬇"
	MsgSearchPrompt        = "🔎 Введите название фильма для поиска:"
	MsgNothingFound        = "Фильмы не найдены 😔"
	MsgMoreCategory        = "Хочешь ещё? 👇"
	MsgMoreSearch          = "Хочешь посмотреть ещё результаты?"
	MsgMoreSearchNext      = "Ещё результаты:"
	MsgTopRated            = "Это топ-3 фильмов! 🔥"
	MsgTrending            = "Попробуй эти фильмы! 🎯"
	MsgNewReleases         = "Это новинки кино! 🆕"
	MsgFavoriteAdded       = "✅ Фильм добавлен в избранное ⭐"
	MsgFavoriteRemoved     = "🗑 Фильм удалён из избранного."
	MsgFavoriteNotRemoved  = "⚠️ Не удалось удалить фильм."
	MsgFavoritesEmpty      = "У вас нет избранных фильмов 😔"
	MsgFavoritesFooter     = "Это ваш список избранных фильмов! ⭐"
	MsgNotificationsOn     = "🔔 Уведомления включены."
	MsgNotificationsOff    = "🔕 Уведомления отключены."
	MsgNotificationsChange = "Вы можете изменить настройки:"
	MsgUnknownCommand      = "🤖 Неизвестная команда. Доступные команды: /start, /search, /notifications"
	MsgGenericError        = "❌ Произошла ошибка. Попробуйте позже."
)

// UserMessage maps a domain error to the short message shown to the user
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, moverrors.ErrInvalidCategory):
		return MsgChooseFromKeyboard
	case errors.Is(err, moverrors.ErrNoActiveCategory):
		return "Сначала выбери жанр 👇"
	case errors.Is(err, moverrors.ErrEmptyQuery):
		return "Пожалуйста, введите корректное название фильма."
	case errors.Is(err, moverrors.ErrSearchExpired):
		return "Поисковый запрос не найден. Повторите поиск."
	case errors.Is(err, moverrors.ErrRateLimited):
		return "⏳ Слишком часто. Подожди немного и попробуй снова."
	case errors.Is(err, moverrors.ErrNoMoreResults):
		return "Больше фильмов не найдено."
	case errors.Is(err, moverrors.ErrUnknownAction):
		return "Неизвестное действие."
	case errors.Is(err, catalogerrors.ErrMovieNotFound):
		return "Фильм не найден в каталоге."
	case errors.Is(err, catalogerrors.ErrCatalogUnavailable):
		return "Каталог фильмов временно недоступен. Попробуйте позже."
	case errors.Is(err, faverrors.ErrFavoriteAlreadyExists):
		return "⚠️ Этот фильм уже в вашем списке избранного."
	case errors.Is(err, faverrors.ErrFavoritesLimitReached):
		return fmt.Sprintf("❗ Вы достигли лимита в %d избранных фильмов.", faventities.MaxFavorites)
	case errors.Is(err, faverrors.ErrUserNotFound):
		return "Сначала начни диалог с ботом командой /start."
	case errors.Is(err, faverrors.ErrInvalidItem):
		return "⚠️ Не удалось добавить фильм. Повторите попытку."
	case errors.Is(err, faverrors.ErrPersistence):
		return "⚠️ Не удалось сохранить изменения. Повторите попытку."
	default:
		return MsgGenericError
	}
}

// nothingFoundFor is the reply to a search without results
func nothingFoundFor(query string) string {
	return fmt.Sprintf("По запросу «%s» ничего не найдено.", html.EscapeString(query))
}

// notificationStatus renders the /notifications reply
func notificationStatus(enabled bool) string {
	return notificationToast(enabled) + "\n" + MsgNotificationsChange
}

func notificationToast(enabled bool) string {
	if enabled {
		return MsgNotificationsOn
	}
	return MsgNotificationsOff
}
