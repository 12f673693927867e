package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) (*domain.UserProductPrice, error) {
	var p domain.UserProductPrice
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, product_id, custom_price, created_at, updated_at
		 FROM user_product_prices WHERE user_id = ? AND product_id = ? LIMIT 1`,
		userID,
		productID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.UserProductPrice, error) {
	var items []domain.UserProductPrice
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, product_id, custom_price, created_at, updated_at
		 FROM user_product_prices WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, price *domain.UserProductPrice) error {
	existing, err := r.FindByUserAndProduct(ctx, db, price.UserID, price.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return db.WithContext(ctx).Exec(
			`INSERT INTO user_product_prices (id, user_id, product_id, custom_price, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			price.ID,
			price.UserID,
			price.ProductID,
			price.CustomPrice,
			price.CreatedAt,
			price.UpdatedAt,
		).Error
	}
	return db.WithContext(ctx).Exec(
		`UPDATE user_product_prices SET custom_price = ?, updated_at = ? WHERE user_id = ? AND product_id = ?`,
		price.CustomPrice,
		price.UpdatedAt,
		price.UserID,
		price.ProductID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM user_product_prices WHERE user_id = ? AND product_id = ?`,
		userID,
		productID,
	).Error
}
