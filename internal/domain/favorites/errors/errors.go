// Package errors contains domain-specific errors for the favorites domain
package errors

import (
	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

// Domain errors for favorites operations
var (
	ErrFavoriteAlreadyExists = pkgerrors.NewConflictError("movie already in favorites")
	ErrFavoritesLimitReached = pkgerrors.NewConflictError("favorites limit reached")
	ErrUserNotFound          = pkgerrors.NewNotFoundError("user not found")
	ErrPersistence           = pkgerrors.NewInternalError("favorites storage failure")
	ErrInvalidItem           = pkgerrors.NewValidationError("invalid favorite item")
	ErrKafkaProducer         = pkgerrors.NewInternalError("kafka producer error")
)
