package subscription

import (
	"github.com/hubln/hubln/internal/subscription/repository"
	"github.com/hubln/hubln/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
