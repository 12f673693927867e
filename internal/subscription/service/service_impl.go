package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   config.Config
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository

	periodDays int
	trialDays  int
}

func New(p Params) domain.Service {
	periodDays := p.Cfg.Subscription.PeriodDays
	if periodDays <= 0 {
		periodDays = 30
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("subscription.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		periodDays: periodDays,
		trialDays:  p.Cfg.Subscription.TrialDays,
	}
}

func (s *Service) StartCheckout(ctx context.Context, req domain.StartCheckoutRequest) (*domain.Response, error) {
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, err
	}
	billingID := strings.TrimSpace(req.BillingID)
	if billingID == "" {
		return nil, domain.ErrInvalidBilling
	}

	now := s.clock.Now(ctx)
	existing, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		sub := domain.Subscription{
			ID:        s.genID.Generate(),
			UserID:    userID,
			Status:    domain.StatusPending,
			BillingID: billingID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, s.db, &sub); err != nil {
			return nil, err
		}
		return s.toResponse(ctx, &sub), nil
	}

	if domain.DerivedStatus(existing, now) == domain.StatusActive {
		// Still active; nothing to bill, keep the current cycle.
		return s.toResponse(ctx, existing), nil
	}

	existing.Status = domain.StatusPending
	existing.BillingID = billingID
	existing.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, existing), nil
}

func (s *Service) StartTrial(ctx context.Context, userID string) (*domain.Response, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserID(ctx, s.db, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyOnTrial
	}

	now := s.clock.Now(ctx)
	trialEnd := now.AddDate(0, 0, s.trialDays)
	sub := domain.Subscription{
		ID:             s.genID.Generate(),
		UserID:         uid,
		Status:         domain.StatusTrial,
		TrialExpiresAt: &trialEnd,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, s.db, &sub); err != nil {
		return nil, err
	}

	s.log.Info("trial started",
		zap.String("user_id", uid.String()),
		zap.Time("trial_expires_at", trialEnd))

	return s.toResponse(ctx, &sub), nil
}

func (s *Service) ActivateByBillingID(ctx context.Context, billingID string) (*domain.Response, bool, error) {
	billingID = strings.TrimSpace(billingID)
	if billingID == "" {
		return nil, false, domain.ErrInvalidBilling
	}

	sub, err := s.repo.FindByBillingID(ctx, s.db, billingID)
	if err != nil {
		return nil, false, err
	}
	if sub == nil {
		return nil, false, domain.ErrNotFound
	}

	now := s.clock.Now(ctx)
	if domain.DerivedStatus(sub, now) == domain.StatusActive {
		// Redelivered paid event. Do not shift the end date.
		return s.toResponse(ctx, sub), false, nil
	}

	endDate := now.AddDate(0, 0, s.periodDays)
	sub.Status = domain.StatusActive
	sub.StartDate = &now
	sub.EndDate = &endDate
	sub.UpdatedAt = now

	changed, err := s.repo.Activate(ctx, s.db, sub, []domain.Status{
		domain.StatusPending,
		domain.StatusTrial,
		domain.StatusExpired,
		domain.StatusActive,
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.log.Info("subscription activated",
			zap.String("billing_id", billingID),
			zap.String("user_id", sub.UserID.String()),
			zap.Time("end_date", endDate))
	}
	return s.toResponse(ctx, sub), changed, nil
}

func (s *Service) GetForUser(ctx context.Context, userID string) (*domain.Response, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByUserID(ctx, s.db, uid)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &domain.Response{UserID: uid.String(), Status: domain.StatusNone}, nil
	}
	return s.toResponse(ctx, sub), nil
}

func (s *Service) toResponse(ctx context.Context, sub *domain.Subscription) *domain.Response {
	return &domain.Response{
		ID:             sub.ID.String(),
		UserID:         sub.UserID.String(),
		Status:         domain.DerivedStatus(sub, s.clock.Now(ctx)),
		BillingID:      sub.BillingID,
		StartDate:      sub.StartDate,
		EndDate:        sub.EndDate,
		TrialExpiresAt: sub.TrialExpiresAt,
	}
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
