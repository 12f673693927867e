package commission

import (
	"github.com/hubln/hubln/internal/commission/repository"
	"github.com/hubln/hubln/internal/commission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.engine",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
