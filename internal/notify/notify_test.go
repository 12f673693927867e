package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotifier(t *testing.T) (*Notifier, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, zap.NewNop()), mr
}

func TestInvalidateViews(t *testing.T) {
	n, mr := newNotifier(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate()

	require.NoError(t, mr.Set("views:dashboard:"+userID.String(), "cached"))
	require.NoError(t, mr.Set("views:submissions:"+userID.String(), "cached"))
	require.NoError(t, mr.Set("views:dashboard:other", "cached"))

	require.NoError(t, n.InvalidateViews(ctx, []snowflake.ID{userID}))

	assert.False(t, mr.Exists("views:dashboard:"+userID.String()))
	assert.False(t, mr.Exists("views:submissions:"+userID.String()))
	assert.True(t, mr.Exists("views:dashboard:other"))

	// No users, no round trip.
	assert.NoError(t, n.InvalidateViews(ctx, nil))
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	n, _ := newNotifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := n.Subscribe(ctx)
	// Give the subscriber a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, n.PublishPaymentConfirmed(ctx, PaymentConfirmed{
		Provider:  "abacatepay",
		PaymentID: "bill_1",
		Status:    "CONFIRMED",
	}))

	select {
	case got := <-events:
		assert.Equal(t, "abacatepay", got.Provider)
		assert.Equal(t, "bill_1", got.PaymentID)
		assert.Equal(t, "CONFIRMED", got.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation broadcast")
	}

	// Cancellation closes the stream.
	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream close")
	}
}
