package pricing

import (
	"github.com/hubln/hubln/internal/pricing/repository"
	"github.com/hubln/hubln/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
