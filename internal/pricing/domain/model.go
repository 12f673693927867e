package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// UserProductPrice is the price a user charges their own referrals for a
// product. At most one row per (user, product); created only by an explicit
// set-price action.
type UserProductPrice struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	UserID      snowflake.ID    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID   snowflake.ID    `json:"product_id" gorm:"not null;uniqueIndex:idx_user_product"`
	CustomPrice decimal.Decimal `json:"custom_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null"`
}

func (UserProductPrice) TableName() string { return "user_product_prices" }
