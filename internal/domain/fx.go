// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/internal/domain/catalog"
	"github.com/Conte777/MovieFlow/internal/domain/favorites"
	"github.com/Conte777/MovieFlow/internal/domain/movie"
	"github.com/Conte777/MovieFlow/internal/domain/notification"
	"github.com/Conte777/MovieFlow/internal/domain/session"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	catalog.Module,
	session.Module,
	favorites.Module,
	notification.Module,
	movie.Module,
)
