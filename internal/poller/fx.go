package poller

import "go.uber.org/fx"

var Module = fx.Module("poller",
	fx.Provide(New),
)
