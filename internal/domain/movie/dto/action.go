package dto

import (
	"strconv"
	"strings"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	moverrors "github.com/Conte777/MovieFlow/internal/domain/movie/errors"
)

// ActionKind is the closed set of user actions
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSelectCategory
	ActionShowMore
	ActionSearchMore
	ActionAddFavorite
	ActionRemoveFavorite
	ActionListFavorites
	ActionToggleNotifications
	ActionBack
)

// Callback payloads
const (
	CallbackShowMore            = "more"
	CallbackSearchMore          = "search_more"
	CallbackAddFavoritePrefix   = "fav:"
	CallbackRemoveFavPrefix     = "del:"
	CallbackToggleNotifications = "toggle_notifications"
	CallbackBack                = "back"
)

// Reply keyboard labels
const (
	ButtonTopRated    = "🔥 Топ-3"
	ButtonTrending    = "🎯 Рекомендации"
	ButtonNewReleases = "🆕 Новинки"
	ButtonFavorites   = "⭐ Избранное"
	ButtonBack        = "🔙 Назад к выбору жанра"
)

// Action is a decoded user action
type Action struct {
	Kind     ActionKind
	Category entities.Category
	MovieID  int64
	Text     string
}

var menuCategories = map[string]entities.Category{
	ButtonTopRated:    entities.CategoryTopRated,
	ButtonTrending:    entities.CategoryTrending,
	ButtonNewReleases: entities.CategoryNewReleases,
}

// AddFavoriteData builds the callback payload for adding a movie
func AddFavoriteData(movieID int64) string {
	return CallbackAddFavoritePrefix + strconv.FormatInt(movieID, 10)
}

// RemoveFavoriteData builds the callback payload for removing a movie
func RemoveFavoriteData(movieID int64) string {
	return CallbackRemoveFavPrefix + strconv.FormatInt(movieID, 10)
}

// ParseCallback decodes an inline button payload
func ParseCallback(data string) (Action, error) {
	switch data {
	case CallbackShowMore:
		return Action{Kind: ActionShowMore}, nil
	case CallbackSearchMore:
		return Action{Kind: ActionSearchMore}, nil
	case CallbackToggleNotifications:
		return Action{Kind: ActionToggleNotifications}, nil
	case CallbackBack:
		return Action{Kind: ActionBack}, nil
	}

	if raw, ok := strings.CutPrefix(data, CallbackAddFavoritePrefix); ok {
		id, err := parseMovieID(raw)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionAddFavorite, MovieID: id}, nil
	}

	if raw, ok := strings.CutPrefix(data, CallbackRemoveFavPrefix); ok {
		id, err := parseMovieID(raw)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionRemoveFavorite, MovieID: id}, nil
	}

	return Action{}, moverrors.ErrUnknownAction
}

// ParseText decodes a plain text message: a menu button, a genre label or free text
func ParseText(text string) Action {
	text = strings.TrimSpace(text)

	switch text {
	case ButtonFavorites:
		return Action{Kind: ActionListFavorites}
	case ButtonBack:
		return Action{Kind: ActionBack}
	}

	if c, ok := menuCategories[text]; ok {
		return Action{Kind: ActionSelectCategory, Category: c}
	}

	if c := entities.Category(text); c.IsGenre() {
		return Action{Kind: ActionSelectCategory, Category: c}
	}

	return Action{Kind: ActionUnknown, Text: text}
}

func parseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, moverrors.ErrUnknownAction
	}
	return id, nil
}
