package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, submission *Submission) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Submission, error)
	FindByExternalReference(ctx context.Context, db *gorm.DB, ref string) ([]Submission, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, paid *bool, page pagination.Pagination) ([]Submission, int64, error)
	// MarkPaid flips unpaid rows matching the reference and reports how many
	// actually changed. Already-paid rows are left untouched.
	MarkPaid(ctx context.Context, db *gorm.DB, ref string, paidAt time.Time) (int64, error)
}
