package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	Name     string       `json:"name" gorm:"type:text;not null"`
	Category string       `json:"category" gorm:"type:varchar(50);not null;index"`

	// BasePrice is the platform floor price. Commissions are the spread a
	// reseller captures above it.
	BasePrice decimal.Decimal `json:"base_price" gorm:"type:decimal(12,2);not null"`

	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
