package session

import "go.uber.org/fx"

// Module provides session state components for fx DI
var Module = fx.Module("session",
	fx.Provide(NewStore),
	fx.Provide(NewRateGate),
)
