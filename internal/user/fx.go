package user

import (
	"github.com/hubln/hubln/internal/user/repository"
	"github.com/hubln/hubln/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
