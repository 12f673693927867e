package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/commission"
	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/migration"
	"github.com/hubln/hubln/internal/notify"
	"github.com/hubln/hubln/internal/observability"
	"github.com/hubln/hubln/internal/payment"
	"github.com/hubln/hubln/internal/poller"
	"github.com/hubln/hubln/internal/pricing"
	"github.com/hubln/hubln/internal/product"
	"github.com/hubln/hubln/internal/scheduler"
	"github.com/hubln/hubln/internal/server"
	"github.com/hubln/hubln/internal/submission"
	"github.com/hubln/hubln/internal/subscription"
	"github.com/hubln/hubln/internal/user"
	"github.com/hubln/hubln/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		notify.Module,

		// Functional domains
		user.Module,
		product.Module,
		pricing.Module,
		commission.Module,
		submission.Module,
		subscription.Module,
		payment.Module,
		poller.Module,
		scheduler.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
