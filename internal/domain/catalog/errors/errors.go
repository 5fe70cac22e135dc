// Package errors contains domain-specific errors for the catalog domain
package errors

import (
	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

// Domain errors for catalog operations
var (
	ErrCatalogUnavailable = pkgerrors.NewServiceUnavailableError("catalog unavailable")
	ErrMovieNotFound      = pkgerrors.NewNotFoundError("movie not found in catalog")
)
