package scheduler

import (
	"context"
	"time"

	"github.com/hubln/hubln/internal/clock"
	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
	"github.com/hubln/hubln/internal/config"
	paymentrepository "github.com/hubln/hubln/internal/payment/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tickInterval = time.Minute

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Cfg         config.Config
	Commissions commissiondomain.Service
	EventRepo   paymentrepository.EventRepository
}

type Scheduler struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	cfg         config.Config
	commissions commissiondomain.Service
	eventRepo   paymentrepository.EventRepository

	cancel context.CancelFunc
	done   chan struct{}
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:          p.DB,
		log:         p.Log.Named("scheduler"),
		clock:       p.Clock,
		cfg:         p.Cfg,
		commissions: p.Commissions,
		eventRepo:   p.EventRepo,
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.ReleaseCommissionsJob(ctx); err != nil {
		s.log.Error("commission release job failed", zap.Error(err))
	}
	if err := s.ExpireSubscriptionsJob(ctx); err != nil {
		s.log.Error("subscription expiry job failed", zap.Error(err))
	}
	if err := s.CleanupWebhookEventsJob(ctx); err != nil {
		s.log.Error("webhook cleanup job failed", zap.Error(err))
	}
}
