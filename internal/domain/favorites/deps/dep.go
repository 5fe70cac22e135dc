// Package deps contains interface definitions for the favorites domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
)

// FavoritesRepository defines interface for users and favorites data access
type FavoritesRepository interface {
	// EnsureUser creates the user if absent and returns it
	EnsureUser(ctx context.Context, telegramID int64, username string) (*entities.User, error)

	// GetUser returns the user or ErrUserNotFound
	GetUser(ctx context.Context, telegramID int64) (*entities.User, error)

	// AddFavorite atomically checks duplicate, then capacity, then inserts.
	// The user is created when absent.
	AddFavorite(ctx context.Context, telegramID int64, username string, favorite *entities.Favorite, limit int) error

	// RemoveFavorite deletes a favorite and reports whether it existed
	RemoveFavorite(ctx context.Context, telegramID, movieID int64) (bool, error)

	// ListFavorites returns favorites in insertion order
	ListFavorites(ctx context.Context, telegramID int64) ([]entities.Favorite, error)

	// ToggleNotifications flips receive_notifications and returns the new value
	ToggleNotifications(ctx context.Context, telegramID int64) (bool, error)
}

// FavoriteEventProducer defines interface for sending favorites events to Kafka
type FavoriteEventProducer interface {
	// SendFavoriteChanged sends a favorite added or removed event
	SendFavoriteChanged(ctx context.Context, event *dto.FavoriteChangedEvent) error

	// Close closes the producer
	Close() error
}
