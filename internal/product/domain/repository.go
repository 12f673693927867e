package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest, page pagination.Pagination) ([]Product, int64, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
}
