package scheduler

import (
	"context"

	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	"go.uber.org/zap"
)

func (s *Scheduler) ReleaseCommissionsJob(ctx context.Context) error {
	released, err := s.commissions.Release(ctx)
	if err != nil {
		return err
	}
	if released > 0 {
		s.log.Info("release sweep completed", zap.Int64("released", released))
	}
	return nil
}

// ExpireSubscriptionsJob persists what DerivedStatus already reports, so list
// queries and exports see the terminal state without recomputing dates.
func (s *Scheduler) ExpireSubscriptionsJob(ctx context.Context) error {
	now := s.clock.Now(ctx)

	result := s.db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, updated_at = ?
		 WHERE (status = ? AND end_date IS NOT NULL AND end_date < ?)
		    OR (status = ? AND trial_expires_at IS NOT NULL AND trial_expires_at < ?)`,
		subscriptiondomain.StatusExpired,
		now,
		subscriptiondomain.StatusActive,
		now,
		subscriptiondomain.StatusTrial,
		now,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.log.Info("subscriptions expired", zap.Int64("count", result.RowsAffected))
	}
	return nil
}

func (s *Scheduler) CleanupWebhookEventsJob(ctx context.Context) error {
	retentionDays := s.cfg.Webhook.RetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	deleted, err := s.eventRepo.DeleteReceivedBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("webhook events cleaned up",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", deleted))
	}
	return nil
}
