package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type User struct {
	ID   snowflake.ID `json:"id" gorm:"primaryKey"`
	Name string       `json:"name" gorm:"type:text;not null"`

	Email string `json:"email" gorm:"type:text;not null;uniqueIndex"`

	// ReferralCode is the short numeric code this user hands out to invitees.
	ReferralCode string `json:"referral_code" gorm:"type:varchar(12);not null;uniqueIndex"`

	// ReferredBy holds the inviter's referral code, not their id. The link is
	// resolved by code lookup when walking the chain.
	ReferredBy *string `json:"referred_by,omitempty" gorm:"type:varchar(12);index"`

	IsAdmin    bool      `json:"is_admin" gorm:"default:false"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null"`
}

func (User) TableName() string { return "users" }
