package status

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/migration"
	"github.com/hubln/hubln/internal/payment/domain"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	submissionrepository "github.com/hubln/hubln/internal/submission/repository"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	subscriptionrepository "github.com/hubln/hubln/internal/subscription/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newStatusService(t *testing.T) (domain.StatusService, *gorm.DB, *snowflake.Node, time.Time) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := New(Params{
		DB:               db,
		Log:              zap.NewNop(),
		Clock:            clock.Fixed{T: now},
		SubscriptionRepo: subscriptionrepository.Provide(),
		SubmissionRepo:   submissionrepository.Provide(),
	})
	return svc, db, node, now
}

func TestCheck_SubscriptionStatuses(t *testing.T) {
	svc, db, node, now := newStatusService(t)
	ctx := context.Background()
	repo := subscriptionrepository.Provide()

	start := now.AddDate(0, 0, -5)
	activeEnd := now.AddDate(0, 0, 25)
	require.NoError(t, repo.Create(ctx, db, &subscriptiondomain.Subscription{
		ID: node.Generate(), UserID: node.Generate(),
		Status: subscriptiondomain.StatusActive, BillingID: "bill_active",
		StartDate: &start, EndDate: &activeEnd,
		CreatedAt: now, UpdatedAt: now,
	}))

	expiredEnd := now.AddDate(0, 0, -1)
	require.NoError(t, repo.Create(ctx, db, &subscriptiondomain.Subscription{
		ID: node.Generate(), UserID: node.Generate(),
		Status: subscriptiondomain.StatusActive, BillingID: "bill_expired",
		StartDate: &start, EndDate: &expiredEnd,
		CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, repo.Create(ctx, db, &subscriptiondomain.Subscription{
		ID: node.Generate(), UserID: node.Generate(),
		Status: subscriptiondomain.StatusPending, BillingID: "bill_pending",
		CreatedAt: now, UpdatedAt: now,
	}))

	result, err := svc.Check(ctx, "bill_active")
	require.NoError(t, err)
	assert.Equal(t, domain.RawStatusConfirmed, result.Status)
	assert.True(t, result.IsPaid)

	result, err = svc.Check(ctx, "bill_expired")
	require.NoError(t, err)
	assert.Equal(t, domain.RawStatusOverdue, result.Status)
	assert.False(t, result.IsPaid)

	result, err = svc.Check(ctx, "bill_pending")
	require.NoError(t, err)
	assert.Equal(t, domain.RawStatusPending, result.Status)
	assert.False(t, result.IsPaid)
}

func TestCheck_SubmissionReference(t *testing.T) {
	svc, db, node, now := newStatusService(t)
	ctx := context.Background()
	repo := submissionrepository.Provide()

	price := decimal.RequireFromString("100")
	sub := submissiondomain.Submission{
		ID: node.Generate(), UserID: node.Generate(), ProductID: node.Generate(),
		Quantity: 1, UnitPrice: price, TotalAmount: price,
		ExternalReference: "submission_1", CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, db, &sub))

	result, err := svc.Check(ctx, "submission_1")
	require.NoError(t, err)
	assert.Equal(t, domain.RawStatusPending, result.Status)
	assert.False(t, result.IsPaid)

	_, err = repo.MarkPaid(ctx, db, "submission_1", now)
	require.NoError(t, err)

	result, err = svc.Check(ctx, "submission_1")
	require.NoError(t, err)
	assert.Equal(t, domain.RawStatusReceived, result.Status)
	assert.True(t, result.IsPaid)
}

func TestCheck_UnknownReference(t *testing.T) {
	svc, _, _, _ := newStatusService(t)

	_, err := svc.Check(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = svc.Check(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
