package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
	"github.com/hubln/hubln/internal/notify"
	"github.com/hubln/hubln/internal/payment/domain"
	"github.com/hubln/hubln/internal/payment/repository"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Registry      *domain.Registry
	EventRepo     repository.EventRepository
	Subscriptions subscriptiondomain.Service
	Submissions   submissiondomain.Service
	Commissions   commissiondomain.Service
	Notifier      *notify.Notifier
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	registry      *domain.Registry
	eventRepo     repository.EventRepository
	subscriptions subscriptiondomain.Service
	submissions   submissiondomain.Service
	commissions   commissiondomain.Service
	notifier      *notify.Notifier
}

func NewService(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("payment.webhook"),
		genID:         p.GenID,
		clock:         p.Clock,
		registry:      p.Registry,
		eventRepo:     p.EventRepo,
		subscriptions: p.Subscriptions,
		submissions:   p.Submissions,
		commissions:   p.Commissions,
		notifier:      p.Notifier,
	}
}

// Ingest validates and applies one webhook delivery. Redeliveries and events
// the platform ignores are acknowledged without mutation; both providers feed
// the same subscription/submission state machine.
func (s *Service) Ingest(ctx context.Context, provider string, payload []byte, headers http.Header) (*domain.Result, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, domain.ErrInvalidProvider
	}
	adapter, ok := s.registry.Get(provider)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		return nil, domain.ErrInvalidPayload
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		s.log.Warn("webhook verification failed", zap.String("provider", provider))
		return nil, err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, domain.ErrEventIgnored) {
			s.log.Debug("webhook event ignored", zap.String("provider", provider))
			return &domain.Result{Processed: false, Message: "event ignored"}, nil
		}
		s.log.Error("webhook parse failed",
			zap.String("provider", provider),
			zap.Error(err),
			zap.Int("payload_size", len(payload)))
		return nil, err
	}

	existing, err := s.eventRepo.Find(ctx, s.db, event.Provider, event.ProviderEventID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ProcessedAt != nil {
		s.log.Info("webhook event replayed",
			zap.String("provider", provider),
			zap.String("provider_event_id", event.ProviderEventID))
		return &domain.Result{
			Processed: false,
			PaymentID: event.BillingID,
			Message:   "event already processed",
		}, nil
	}

	result, err := s.apply(ctx, event)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		now := s.clock.Now(ctx)
		record := domain.EventRecord{
			ID:              s.genID.Generate(),
			Provider:        event.Provider,
			ProviderEventID: event.ProviderEventID,
			EventType:       event.Type,
			BillingID:       event.BillingID,
			Payload:         event.RawPayload,
			ReceivedAt:      now,
			ProcessedAt:     &now,
		}
		if err := s.eventRepo.Insert(ctx, s.db, &record); err != nil {
			// The state change already landed; failing the ack would only
			// trigger a redelivery that the CAS guards absorb.
			s.log.Error("failed to record webhook event", zap.Error(err))
		}
	}

	return result, nil
}

func (s *Service) apply(ctx context.Context, event *domain.PaymentEvent) (*domain.Result, error) {
	// The invoice provider references submissions; the QR-code provider
	// references subscription billing. Both paths stay separate on purpose.
	if event.ExternalReference != "" {
		return s.applySubmissionPayment(ctx, event)
	}
	return s.applySubscriptionPayment(ctx, event)
}

func (s *Service) applySubmissionPayment(ctx context.Context, event *domain.PaymentEvent) (*domain.Result, error) {
	paid, err := s.submissions.MarkPaidByExternalReference(ctx, event.ExternalReference)
	if err != nil {
		if errors.Is(err, submissiondomain.ErrNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	ids := make([]string, 0, len(paid.Submissions))
	userIDs := make([]snowflake.ID, 0, len(paid.Submissions))
	for i := range paid.Submissions {
		sub := &paid.Submissions[i]
		ids = append(ids, sub.ID.String())
		userIDs = append(userIDs, sub.UserID)

		if err := s.commissions.Record(ctx, commissiondomain.RecordRequest{
			SubmissionID: sub.ID.String(),
			BuyerID:      sub.UserID.String(),
			ProductID:    sub.ProductID.String(),
			Quantity:     sub.Quantity,
			UnitPrice:    sub.UnitPrice.StringFixed(2),
		}); err != nil {
			// Ledger writes are reconciled by the release sweep; the payment
			// itself is already applied, so log and keep going.
			s.log.Error("commission recording failed",
				zap.String("submission_id", sub.ID.String()),
				zap.Error(err))
		}
	}

	if paid.Updated > 0 {
		s.afterPaid(ctx, event, userIDs)
	}

	return &domain.Result{
		Processed:     paid.Updated > 0,
		PaymentID:     event.BillingID,
		SubmissionIDs: ids,
		Message:       "payment received",
	}, nil
}

func (s *Service) applySubscriptionPayment(ctx context.Context, event *domain.PaymentEvent) (*domain.Result, error) {
	resp, changed, err := s.subscriptions.ActivateByBillingID(ctx, event.BillingID)
	if err != nil {
		if errors.Is(err, subscriptiondomain.ErrNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	if changed {
		userID, parseErr := snowflake.ParseString(resp.UserID)
		if parseErr == nil {
			s.afterPaid(ctx, event, []snowflake.ID{userID})
		}
	}

	return &domain.Result{
		Processed: changed,
		PaymentID: event.BillingID,
		Message:   "subscription activated",
	}, nil
}

func (s *Service) afterPaid(ctx context.Context, event *domain.PaymentEvent, userIDs []snowflake.ID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.InvalidateViews(ctx, userIDs); err != nil {
		s.log.Warn("cache invalidation failed", zap.Error(err))
	}
	if err := s.notifier.PublishPaymentConfirmed(ctx, notify.PaymentConfirmed{
		Provider:  event.Provider,
		PaymentID: event.BillingID,
		Status:    event.RawStatus,
	}); err != nil {
		s.log.Warn("payment broadcast failed", zap.Error(err))
	}
}
