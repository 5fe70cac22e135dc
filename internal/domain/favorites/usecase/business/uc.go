// Package business contains business logic for the favorites domain
package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/internal/domain/favorites/deps"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

// UseCase manages users, their favorites and notification preference
type UseCase struct {
	repository deps.FavoritesRepository
	producer   deps.FavoriteEventProducer
	validate   *validator.Validate
	limit      int
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	repository deps.FavoritesRepository,
	producer deps.FavoriteEventProducer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repository: repository,
		producer:   producer,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		limit:      entities.MaxFavorites,
		metrics:    m,
		logger:     logger.With().Str("component", "favorites-usecase").Logger(),
	}
}

// EnsureUser registers the user on first interaction
func (u *UseCase) EnsureUser(ctx context.Context, userID int64, username string) error {
	user, err := u.repository.EnsureUser(ctx, userID, username)
	if err != nil {
		u.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to ensure user")
		return err
	}

	u.logger.Debug().Int64("user_id", userID).Uint("id", user.ID).Msg("user ensured")
	return nil
}

// Add saves item to the user's favorites.
// Existence is checked before capacity; the repository keeps both checks and the insert atomic per user.
func (u *UseCase) Add(ctx context.Context, userID int64, username string, item dto.FavoriteItem) (dto.AddOutcome, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := u.validate.Struct(item); err != nil {
		u.metrics.RecordFavoriteOutcome(string(dto.AddOutcomeFailed))
		return dto.AddOutcomeFailed, fmt.Errorf("%w: %v", faverrors.ErrInvalidItem, err)
	}

	favorite := &entities.Favorite{
		MovieID:       item.MovieID,
		MovieTitle:    item.Title,
		MovieOverview: item.Overview,
		PosterURL:     item.PosterURL,
	}

	err := u.repository.AddFavorite(ctx, userID, username, favorite, u.limit)
	outcome := outcomeOf(err)
	u.metrics.RecordFavoriteOutcome(string(outcome))

	switch outcome {
	case dto.AddOutcomeAdded:
		u.logger.Info().Int64("user_id", userID).Int64("movie_id", item.MovieID).Msg("favorite added")
		u.publish(ctx, userID, item.MovieID, item.Title, dto.FavoriteActionAdded)
		return outcome, nil
	case dto.AddOutcomeFailed:
		u.logger.Error().Err(err).Int64("user_id", userID).Int64("movie_id", item.MovieID).Msg("failed to add favorite")
	default:
		u.logger.Debug().Int64("user_id", userID).Int64("movie_id", item.MovieID).Str("outcome", string(outcome)).Msg("favorite not added")
	}

	return outcome, err
}

// Remove deletes a favorite; removing a missing favorite returns false without error
func (u *UseCase) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	removed, err := u.repository.RemoveFavorite(ctx, userID, movieID)
	if err != nil {
		u.logger.Error().Err(err).Int64("user_id", userID).Int64("movie_id", movieID).Msg("failed to remove favorite")
		return false, err
	}

	if removed {
		u.metrics.RecordFavoriteRemoved()
		u.logger.Info().Int64("user_id", userID).Int64("movie_id", movieID).Msg("favorite removed")
		u.publish(ctx, userID, movieID, "", dto.FavoriteActionRemoved)
	}

	return removed, nil
}

// List returns favorites in insertion order, read from storage on every call
func (u *UseCase) List(ctx context.Context, userID int64) ([]entities.Favorite, error) {
	favorites, err := u.repository.ListFavorites(ctx, userID)
	if err != nil {
		u.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list favorites")
		return nil, err
	}
	return favorites, nil
}

// ToggleNotifications flips the user's notification preference and returns the new value
func (u *UseCase) ToggleNotifications(ctx context.Context, userID int64) (bool, error) {
	enabled, err := u.repository.ToggleNotifications(ctx, userID)
	if err != nil {
		if !errors.Is(err, faverrors.ErrUserNotFound) {
			u.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to toggle notifications")
		}
		return false, err
	}

	u.logger.Info().Int64("user_id", userID).Bool("enabled", enabled).Msg("notifications toggled")
	return enabled, nil
}

// NotificationsEnabled returns the user's notification preference
func (u *UseCase) NotificationsEnabled(ctx context.Context, userID int64) (bool, error) {
	user, err := u.repository.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.ReceiveNotifications, nil
}

// publish sends the change event; failures are logged and never fail the operation
func (u *UseCase) publish(ctx context.Context, userID, movieID int64, title string, action dto.FavoriteAction) {
	event := &dto.FavoriteChangedEvent{
		UserID:     userID,
		MovieID:    movieID,
		MovieTitle: title,
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := u.producer.SendFavoriteChanged(ctx, event); err != nil {
		u.logger.Warn().Err(err).Int64("user_id", userID).Str("action", string(action)).Msg("failed to publish favorite event")
	}
}

func outcomeOf(err error) dto.AddOutcome {
	switch {
	case err == nil:
		return dto.AddOutcomeAdded
	case errors.Is(err, faverrors.ErrFavoriteAlreadyExists):
		return dto.AddOutcomeAlreadyExists
	case errors.Is(err, faverrors.ErrFavoritesLimitReached):
		return dto.AddOutcomeLimitReached
	default:
		return dto.AddOutcomeFailed
	}
}
