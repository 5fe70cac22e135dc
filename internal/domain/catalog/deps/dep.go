// Package deps contains interface definitions for the catalog domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

// Client queries the remote movie catalog.
// Every error returned wraps errors.ErrCatalogUnavailable unless it is errors.ErrMovieNotFound.
type Client interface {
	// QueryByCategory returns a page of movies of a genre category
	QueryByCategory(ctx context.Context, category entities.Category, page int) (*entities.ResultPage, error)

	// QueryTopRated returns a page of top rated movies
	QueryTopRated(ctx context.Context, page int) (*entities.ResultPage, error)

	// QueryTrending returns this week's trending movies
	QueryTrending(ctx context.Context) (*entities.ResultPage, error)

	// QueryNewReleases returns a page of movies now in theatres
	QueryNewReleases(ctx context.Context, page int) (*entities.ResultPage, error)

	// SearchByKeyword returns a page of movies matching text
	SearchByKeyword(ctx context.Context, text string, page int) (*entities.ResultPage, error)

	// GetMovie returns a single movie by catalog id
	GetMovie(ctx context.Context, id int64) (*entities.Movie, error)
}
