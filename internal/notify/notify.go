package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel carries payment confirmations to every live session. Delivery is
// at-least-once at best; consumers must tolerate duplicates and missed
// messages, correctness lives in the webhook path.
const Channel = "payments:confirmed"

type PaymentConfirmed struct {
	Provider  string `json:"provider"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

type Notifier struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(rdb *redis.Client, log *zap.Logger) *Notifier {
	return &Notifier{
		rdb: rdb,
		log: log.Named("notify"),
	}
}

// InvalidateViews drops the cached dashboard and submission views for the
// affected users so their next fetch sees post-payment state.
func (n *Notifier) InvalidateViews(ctx context.Context, userIDs []snowflake.ID) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs)*2)
	for _, id := range userIDs {
		keys = append(keys,
			fmt.Sprintf("views:dashboard:%s", id.String()),
			fmt.Sprintf("views:submissions:%s", id.String()),
		)
	}
	return n.rdb.Del(ctx, keys...).Err()
}

func (n *Notifier) PublishPaymentConfirmed(ctx context.Context, event PaymentConfirmed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, Channel, body).Err()
}

// Subscribe returns a stream of confirmations. The caller owns cancellation
// through ctx; the channel closes when the subscription ends.
func (n *Notifier) Subscribe(ctx context.Context) <-chan PaymentConfirmed {
	out := make(chan PaymentConfirmed)
	sub := n.rdb.Subscribe(ctx, Channel)

	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event PaymentConfirmed
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.log.Warn("dropping malformed broadcast", zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
