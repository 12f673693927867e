package submission

import (
	"github.com/hubln/hubln/internal/submission/repository"
	"github.com/hubln/hubln/internal/submission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("submission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
