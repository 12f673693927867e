package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/submission/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, submission *domain.Submission) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO submissions (id, user_id, product_id, quantity, unit_price, total_amount, external_reference, paid, paid_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		submission.ID,
		submission.UserID,
		submission.ProductID,
		submission.Quantity,
		submission.UnitPrice,
		submission.TotalAmount,
		submission.ExternalReference,
		submission.Paid,
		submission.PaidAt,
		submission.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Submission, error) {
	var s domain.Submission
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, product_id, quantity, unit_price, total_amount, external_reference, paid, paid_at, created_at
		 FROM submissions WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindByExternalReference(ctx context.Context, db *gorm.DB, ref string) ([]domain.Submission, error) {
	var items []domain.Submission
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, product_id, quantity, unit_price, total_amount, external_reference, paid, paid_at, created_at
		 FROM submissions WHERE external_reference = ? ORDER BY created_at ASC`,
		ref,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, paid *bool, page pagination.Pagination) ([]domain.Submission, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("user_id = ?", userID)
	if paid != nil {
		stmt = stmt.Where("paid = ?", *paid)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Submission
	err := stmt.
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) MarkPaid(ctx context.Context, db *gorm.DB, ref string, paidAt time.Time) (int64, error) {
	// paid = FALSE in the predicate makes redelivered webhooks no-ops.
	result := db.WithContext(ctx).Exec(
		`UPDATE submissions SET paid = ?, paid_at = ? WHERE external_reference = ? AND paid = ?`,
		true,
		paidAt,
		ref,
		false,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
