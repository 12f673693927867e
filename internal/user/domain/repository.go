package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindByReferralCode(ctx context.Context, db *gorm.DB, code string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest, page pagination.Pagination) ([]User, int64, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
}
