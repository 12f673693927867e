package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/migration"
	"github.com/hubln/hubln/internal/subscription/domain"
	"github.com/hubln/hubln/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, at time.Time) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := serviceAt(db, node, at)
	return svc, db, node
}

func serviceAt(db *gorm.DB, node *snowflake.Node, at time.Time) domain.Service {
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed{T: at},
		Cfg: config.Config{
			Subscription: config.SubscriptionConfig{PeriodDays: 30, TrialDays: 7},
		},
		Repo: repository.Provide(),
	})
}

func TestStartTrial(t *testing.T) {
	svc, db, node := newService(t, testNow)
	ctx := context.Background()
	userID := node.Generate()

	resp, err := svc.StartTrial(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTrial, resp.Status)
	require.NotNil(t, resp.TrialExpiresAt)
	assert.True(t, resp.TrialExpiresAt.Equal(testNow.AddDate(0, 0, 7)))

	// One subscription row per user; the trial cannot be restarted.
	_, err = svc.StartTrial(ctx, userID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyOnTrial)

	// Past its expiry the trial reads as expired without any write.
	later := serviceAt(db, node, testNow.AddDate(0, 0, 8))
	resp, err = later.GetForUser(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, resp.Status)
}

func TestGetForUser_NoSubscription(t *testing.T) {
	svc, _, node := newService(t, testNow)

	resp, err := svc.GetForUser(context.Background(), node.Generate().String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, resp.Status)
}

func TestStartCheckout(t *testing.T) {
	svc, _, node := newService(t, testNow)
	ctx := context.Background()
	userID := node.Generate()

	resp, err := svc.StartCheckout(ctx, domain.StartCheckoutRequest{
		UserID:    userID.String(),
		BillingID: "bill_1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "bill_1", resp.BillingID)

	// A new checkout rebinds the pending subscription to the fresh charge.
	resp, err = svc.StartCheckout(ctx, domain.StartCheckoutRequest{
		UserID:    userID.String(),
		BillingID: "bill_2",
	})
	require.NoError(t, err)
	assert.Equal(t, "bill_2", resp.BillingID)

	_, err = svc.StartCheckout(ctx, domain.StartCheckoutRequest{UserID: userID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidBilling)
}

func TestStartCheckout_ActiveKeepsCycle(t *testing.T) {
	svc, _, node := newService(t, testNow)
	ctx := context.Background()
	userID := node.Generate()

	_, err := svc.StartCheckout(ctx, domain.StartCheckoutRequest{
		UserID:    userID.String(),
		BillingID: "bill_1",
	})
	require.NoError(t, err)
	_, changed, err := svc.ActivateByBillingID(ctx, "bill_1")
	require.NoError(t, err)
	require.True(t, changed)

	// Checking out while active does not restart billing or touch the cycle.
	resp, err := svc.StartCheckout(ctx, domain.StartCheckoutRequest{
		UserID:    userID.String(),
		BillingID: "bill_2",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resp.Status)
	assert.Equal(t, "bill_1", resp.BillingID)
}

func TestActivateByBillingID(t *testing.T) {
	svc, db, node := newService(t, testNow)
	ctx := context.Background()
	userID := node.Generate()

	_, _, err := svc.ActivateByBillingID(ctx, "bill_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.StartCheckout(ctx, domain.StartCheckoutRequest{
		UserID:    userID.String(),
		BillingID: "bill_1",
	})
	require.NoError(t, err)

	resp, changed, err := svc.ActivateByBillingID(ctx, "bill_1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusActive, resp.Status)
	require.NotNil(t, resp.EndDate)
	assert.True(t, resp.EndDate.Equal(testNow.AddDate(0, 0, 30)))

	// A redelivered paid event must not shift the end date.
	resp, changed, err = svc.ActivateByBillingID(ctx, "bill_1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, resp.EndDate.Equal(testNow.AddDate(0, 0, 30)))

	// After the period lapses, a fresh payment starts a new cycle.
	later := serviceAt(db, node, testNow.AddDate(0, 0, 31))
	resp, changed, err = later.ActivateByBillingID(ctx, "bill_1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusActive, resp.Status)
	assert.True(t, resp.EndDate.Equal(testNow.AddDate(0, 0, 61)))
}
