package product

import (
	"github.com/hubln/hubln/internal/product/repository"
	"github.com/hubln/hubln/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
