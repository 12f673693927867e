package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (id, user_id, status, billing_id, start_date, end_date, trial_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.UserID,
		sub.Status,
		sub.BillingID,
		sub.StartDate,
		sub.EndDate,
		sub.TrialExpiresAt,
		sub.CreatedAt,
		sub.UpdatedAt,
	).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Subscription, error) {
	var s domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, status, billing_id, start_date, end_date, trial_expires_at, created_at, updated_at
		 FROM subscriptions WHERE user_id = ? LIMIT 1`,
		userID,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindByBillingID(ctx context.Context, db *gorm.DB, billingID string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, status, billing_id, start_date, end_date, trial_expires_at, created_at, updated_at
		 FROM subscriptions WHERE billing_id = ? LIMIT 1`,
		billingID,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	if sub == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, billing_id = ?, start_date = ?, end_date = ?, trial_expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		sub.Status,
		sub.BillingID,
		sub.StartDate,
		sub.EndDate,
		sub.TrialExpiresAt,
		sub.UpdatedAt,
		sub.ID,
	).Error
}

func (r *repo) Activate(ctx context.Context, db *gorm.DB, sub *domain.Subscription, from []domain.Status) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, start_date = ?, end_date = ?, updated_at = ?
		 WHERE id = ? AND status IN ?`,
		domain.StatusActive,
		sub.StartDate,
		sub.EndDate,
		sub.UpdatedAt,
		sub.ID,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
