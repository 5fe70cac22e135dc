// Package errors contains domain-specific errors for the movie browsing domain
package errors

import (
	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

// Domain errors for browsing operations
var (
	ErrInvalidCategory  = pkgerrors.NewValidationError("invalid category")
	ErrNoActiveCategory = pkgerrors.NewValidationError("no category selected")
	ErrEmptyQuery       = pkgerrors.NewValidationError("search query cannot be empty")
	ErrSearchExpired    = pkgerrors.NewNotFoundError("no active search")
	ErrRateLimited      = pkgerrors.NewTooManyRequestsError("too many requests, try again later")
	ErrNoMoreResults    = pkgerrors.NewNotFoundError("no more results")
	ErrUnknownAction    = pkgerrors.NewValidationError("unknown action")
)
