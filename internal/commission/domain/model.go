package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type EarningStatus string

const (
	EarningStatusPending   EarningStatus = "pending"
	EarningStatusAvailable EarningStatus = "available"
)

// Earning is one ledger row: what one chain member earned from one paid
// submission. Immutable after insert except for the pending -> available
// status flip.
type Earning struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	SubmissionID snowflake.ID `json:"submission_id" gorm:"not null;index"`
	UserID       snowflake.ID `json:"user_id" gorm:"not null;index"`
	ReferralCode string       `json:"referral_code" gorm:"type:varchar(12);not null"`
	Level        int          `json:"level" gorm:"not null"`

	CommissionPerUnit decimal.Decimal `json:"commission_per_unit" gorm:"type:decimal(12,2);not null"`
	TotalCommission   decimal.Decimal `json:"total_commission" gorm:"type:decimal(12,2);not null"`

	Status      EarningStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	AvailableAt time.Time     `json:"available_at" gorm:"not null"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null"`
}

func (Earning) TableName() string { return "commission_earnings" }

// ChainEntry is one level of a computed commission chain. Level 0 is the buyer
// and reports the transaction itself; levels >= 1 are ancestors' earnings.
type ChainEntry struct {
	Level             int    `json:"level"`
	UserID            string `json:"user_id"`
	ReferralCode      string `json:"referral_code"`
	BasePrice         string `json:"base_price"`
	SellingPrice      string `json:"selling_price"`
	CommissionPerUnit string `json:"commission_per_unit"`
	TotalCommission   string `json:"total_commission"`
}
