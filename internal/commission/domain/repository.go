package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, earnings []Earning) error
	ExistsForSubmission(ctx context.Context, db *gorm.DB, submissionID snowflake.ID) (bool, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, status EarningStatus) ([]Earning, error)
	ReleaseMatured(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}
