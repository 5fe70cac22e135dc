// Package catalog contains the movie catalog domain module
package catalog

import (
	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/deps"
	"github.com/Conte777/MovieFlow/internal/domain/catalog/repository/http_clients/tmdb"
)

// Module provides the catalog client for fx dependency injection
var Module = fx.Module("catalog",
	fx.Provide(tmdb.NewClient),
	fx.Provide(func(c *tmdb.Client) deps.Client { return c }),
)
