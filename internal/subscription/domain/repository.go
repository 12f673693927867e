package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Subscription, error)
	FindByBillingID(ctx context.Context, db *gorm.DB, billingID string) (*Subscription, error)
	Update(ctx context.Context, db *gorm.DB, sub *Subscription) error
	// Activate is a compare-and-set: it only transitions rows whose stored
	// status still allows activation, and reports whether a row changed.
	Activate(ctx context.Context, db *gorm.DB, sub *Subscription, from []Status) (bool, error)
}
