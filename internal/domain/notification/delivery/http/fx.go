package http

import (
	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/internal/domain/notification/usecase/business"
	"github.com/Conte777/MovieFlow/internal/infrastructure/http/server"
)

// Module provides notification HTTP delivery for fx DI
var Module = fx.Module("notification-http",
	fx.Provide(
		func(uc *business.UseCase) Runner { return uc },
		NewHandler,
		NewRouter,
	),
	fx.Invoke(func(r *Router, srv *server.Server) {
		r.RegisterRoutes(srv.Router)
	}),
)
