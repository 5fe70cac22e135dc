package workers

import (
	"context"

	"go.uber.org/fx"

	"github.com/Conte777/MovieFlow/internal/domain/notification/usecase/business"
)

// Module provides notification workers for fx DI
var Module = fx.Module("notification-workers",
	fx.Provide(func(uc *business.UseCase) Broadcaster { return uc }),
	fx.Provide(NewBroadcastWorker),
	fx.Invoke(registerLifecycle),
)

// registerLifecycle registers broadcast worker with fx.Lifecycle
func registerLifecycle(lc fx.Lifecycle, w *BroadcastWorker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			return nil
		},
	})
}
