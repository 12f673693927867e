package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Submission struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID `json:"user_id" gorm:"not null;index"`
	ProductID snowflake.ID `json:"product_id" gorm:"not null;index"`
	Quantity  int          `json:"quantity" gorm:"not null"`

	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`

	// ExternalReference ties the submission to the payment provider's charge.
	ExternalReference string `json:"external_reference" gorm:"type:varchar(64);not null;index"`

	Paid      bool       `json:"paid" gorm:"default:false;index"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
}

func (Submission) TableName() string { return "submissions" }
