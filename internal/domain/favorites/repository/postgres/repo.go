package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
)

// Repository implements deps.FavoritesRepository on PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnsureUser returns the user, creating it with notifications enabled when absent
func (r *Repository) EnsureUser(ctx context.Context, telegramID int64, username string) (*entities.User, error) {
	var user *entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, telegramID, username)
		user = u
		return err
	})
	if err != nil {
		return nil, persistence(err)
	}
	return user, nil
}

// GetUser returns the user by telegram id or ErrUserNotFound
func (r *Repository) GetUser(ctx context.Context, telegramID int64) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faverrors.ErrUserNotFound
		}
		return nil, persistence(err)
	}
	return &user, nil
}

// AddFavorite runs the duplicate check, the capacity check and the insert in one
// transaction holding the user row lock, so concurrent adds of one user are serialized.
func (r *Repository) AddFavorite(ctx context.Context, telegramID int64, username string, favorite *entities.Favorite, limit int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureUser(tx, telegramID, username); err != nil {
			return err
		}

		var user entities.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("telegram_id = ?", telegramID).
			First(&user).Error; err != nil {
			return err
		}

		var exists int64
		if err := tx.Model(&entities.Favorite{}).
			Where("user_id = ? AND movie_id = ?", user.ID, favorite.MovieID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			return faverrors.ErrFavoriteAlreadyExists
		}

		var count int64
		if err := tx.Model(&entities.Favorite{}).
			Where("user_id = ?", user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return faverrors.ErrFavoritesLimitReached
		}

		favorite.UserID = user.ID
		return tx.Create(favorite).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, faverrors.ErrFavoriteAlreadyExists), errors.Is(err, faverrors.ErrFavoritesLimitReached):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return faverrors.ErrFavoriteAlreadyExists
	default:
		return persistence(err)
	}
}

// RemoveFavorite deletes the favorite and reports whether a row was removed
func (r *Repository) RemoveFavorite(ctx context.Context, telegramID, movieID int64) (bool, error) {
	db := r.db.WithContext(ctx)
	owner := db.Model(&entities.User{}).Select("id").Where("telegram_id = ?", telegramID)

	result := db.
		Where("movie_id = ? AND user_id IN (?)", movieID, owner).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return false, persistence(result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListFavorites returns the user's favorites in insertion order
func (r *Repository) ListFavorites(ctx context.Context, telegramID int64) ([]entities.Favorite, error) {
	var favorites []entities.Favorite
	result := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = favorites.user_id").
		Where("users.telegram_id = ?", telegramID).
		Order("favorites.id ASC").
		Find(&favorites)

	if result.Error != nil {
		return nil, persistence(result.Error)
	}

	return favorites, nil
}

// ToggleNotifications flips the notification flag under the user row lock and returns the new value
func (r *Repository) ToggleNotifications(ctx context.Context, telegramID int64) (bool, error) {
	var enabled bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("telegram_id = ?", telegramID).
			First(&user).Error; err != nil {
			return err
		}

		enabled = !user.ReceiveNotifications
		return tx.Model(&user).Update("receive_notifications", enabled).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, faverrors.ErrUserNotFound
		}
		return false, persistence(err)
	}

	return enabled, nil
}

// ListRecipients returns telegram ids of users with notifications enabled
func (r *Repository) ListRecipients(ctx context.Context) ([]int64, error) {
	var ids []int64
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("receive_notifications = ?", true).
		Order("id ASC").
		Pluck("telegram_id", &ids)

	if result.Error != nil {
		return nil, persistence(result.Error)
	}

	return ids, nil
}

func ensureUser(tx *gorm.DB, telegramID int64, username string) (*entities.User, error) {
	user := entities.User{TelegramID: telegramID, ReceiveNotifications: true}
	if username != "" {
		user.Username = &username
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		return nil, err
	}

	if user.ID != 0 {
		return &user, nil
	}

	var existing entities.User
	if err := tx.Where("telegram_id = ?", telegramID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", faverrors.ErrPersistence, err)
}
