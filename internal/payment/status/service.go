package status

import (
	"context"
	"strings"

	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/payment/domain"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	Clock            clock.Clock
	SubscriptionRepo subscriptiondomain.Repository
	SubmissionRepo   submissiondomain.Repository
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	clock            clock.Clock
	subscriptionRepo subscriptiondomain.Repository
	submissionRepo   submissiondomain.Repository
}

func New(p Params) domain.StatusService {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("payment.status"),
		clock:            p.Clock,
		subscriptionRepo: p.SubscriptionRepo,
		submissionRepo:   p.SubmissionRepo,
	}
}

// Check answers the polling endpoint from local state: the webhook path owns
// correctness, this only reports what has been reconciled so far.
func (s *Service) Check(ctx context.Context, paymentID string) (*domain.StatusResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, domain.ErrRecordNotFound
	}

	sub, err := s.subscriptionRepo.FindByBillingID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		switch subscriptiondomain.DerivedStatus(sub, s.clock.Now(ctx)) {
		case subscriptiondomain.StatusActive:
			return &domain.StatusResult{Status: domain.RawStatusConfirmed, IsPaid: true}, nil
		case subscriptiondomain.StatusExpired:
			return &domain.StatusResult{Status: domain.RawStatusOverdue, IsPaid: false}, nil
		default:
			return &domain.StatusResult{Status: domain.RawStatusPending, IsPaid: false}, nil
		}
	}

	submissions, err := s.submissionRepo.FindByExternalReference(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	for _, item := range submissions {
		if !item.Paid {
			return &domain.StatusResult{Status: domain.RawStatusPending, IsPaid: false}, nil
		}
	}
	return &domain.StatusResult{Status: domain.RawStatusReceived, IsPaid: true}, nil
}
