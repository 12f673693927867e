package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/commission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, earnings []domain.Earning) error {
	if len(earnings) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range earnings {
			err := tx.Exec(
				`INSERT INTO commission_earnings
				 (id, submission_id, user_id, referral_code, level, commission_per_unit, total_commission, status, available_at, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				earnings[i].ID,
				earnings[i].SubmissionID,
				earnings[i].UserID,
				earnings[i].ReferralCode,
				earnings[i].Level,
				earnings[i].CommissionPerUnit,
				earnings[i].TotalCommission,
				earnings[i].Status,
				earnings[i].AvailableAt,
				earnings[i].CreatedAt,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) ExistsForSubmission(ctx context.Context, db *gorm.DB, submissionID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM commission_earnings WHERE submission_id = ?`,
		submissionID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, status domain.EarningStatus) ([]domain.Earning, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Earning{}).
		Where("user_id = ?", userID)
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	var items []domain.Earning
	if err := stmt.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ReleaseMatured(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	// Compare-and-set on status so a concurrent sweep cannot double-flip.
	result := db.WithContext(ctx).Exec(
		`UPDATE commission_earnings SET status = ? WHERE status = ? AND available_at <= ?`,
		domain.EarningStatusAvailable,
		domain.EarningStatusPending,
		now,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
