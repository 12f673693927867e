package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) (*UserProductPrice, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]UserProductPrice, error)
	Upsert(ctx context.Context, db *gorm.DB, price *UserProductPrice) error
	Delete(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) error
}
