package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusNone    Status = "none"
	StatusPending Status = "pending"
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Subscription is the platform-fee billing record for a user. The stored
// status only moves forward on webhook events; date-driven expiry is derived
// at read time (see DerivedStatus) so no webhook is needed for it.
type Subscription struct {
	ID     snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID snowflake.ID `json:"user_id" gorm:"not null;uniqueIndex"`
	Status Status       `json:"status" gorm:"type:varchar(20);not null"`

	// BillingID is the payment provider's charge id for the platform fee.
	BillingID string `json:"billing_id" gorm:"type:varchar(64);index"`

	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	TrialExpiresAt *time.Time `json:"trial_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null"`
}

func (Subscription) TableName() string { return "subscriptions" }

// DerivedStatus folds date expiry into the stored status.
func DerivedStatus(sub *Subscription, now time.Time) Status {
	if sub == nil {
		return StatusNone
	}
	switch sub.Status {
	case StatusActive:
		if sub.EndDate != nil && now.After(*sub.EndDate) {
			return StatusExpired
		}
	case StatusTrial:
		if sub.TrialExpiresAt != nil && now.After(*sub.TrialExpiresAt) {
			return StatusExpired
		}
	}
	return sub.Status
}
