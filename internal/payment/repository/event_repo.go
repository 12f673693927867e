package repository

import (
	"context"
	"time"

	"github.com/hubln/hubln/internal/payment/domain"
	"gorm.io/gorm"
)

type EventRepository interface {
	Find(ctx context.Context, db *gorm.DB, provider, providerEventID string) (*domain.EventRecord, error)
	Insert(ctx context.Context, db *gorm.DB, record *domain.EventRecord) error
	DeleteReceivedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type eventRepo struct{}

func Provide() EventRepository {
	return &eventRepo{}
}

func (r *eventRepo) Find(ctx context.Context, db *gorm.DB, provider, providerEventID string) (*domain.EventRecord, error) {
	var rec domain.EventRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, provider, provider_event_id, event_type, billing_id, payload, received_at, processed_at
		 FROM payment_events WHERE provider = ? AND provider_event_id = ? LIMIT 1`,
		provider,
		providerEventID,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *eventRepo) Insert(ctx context.Context, db *gorm.DB, record *domain.EventRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payment_events (id, provider, provider_event_id, event_type, billing_id, payload, received_at, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Provider,
		record.ProviderEventID,
		record.EventType,
		record.BillingID,
		record.Payload,
		record.ReceivedAt,
		record.ProcessedAt,
	).Error
}

func (r *eventRepo) DeleteReceivedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM payment_events WHERE received_at < ?`,
		cutoff,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
