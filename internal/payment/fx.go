package payment

import (
	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/payment/adapters/abacatepay"
	"github.com/hubln/hubln/internal/payment/adapters/asaas"
	"github.com/hubln/hubln/internal/payment/domain"
	"github.com/hubln/hubln/internal/payment/repository"
	"github.com/hubln/hubln/internal/payment/status"
	"github.com/hubln/hubln/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(cfg config.Config) *domain.Registry {
		return domain.NewRegistry(
			abacatepay.New(cfg.Webhook.AbacatePaySecret),
			asaas.New(),
		)
	}),
	fx.Provide(webhook.NewService),
	fx.Provide(status.New),
)
