package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/user/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, name, email, referral_code, referred_by, is_admin, is_approved, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.ReferralCode,
		user.ReferredBy,
		user.IsAdmin,
		user.IsApproved,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, referral_code, referred_by, is_admin, is_approved, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, referral_code, referred_by, is_admin, is_approved, created_at, updated_at
		 FROM users WHERE email = ? LIMIT 1`,
		email,
	).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

func (r *repo) FindByReferralCode(ctx context.Context, db *gorm.DB, code string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, referral_code, referred_by, is_admin, is_approved, created_at, updated_at
		 FROM users WHERE referral_code = ? LIMIT 1`,
		code,
	).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest, page pagination.Pagination) ([]domain.User, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.User{})

	if filter.ReferredBy != "" {
		stmt = stmt.Where("referred_by = ?", filter.ReferredBy)
	}
	if filter.Approved != nil {
		stmt = stmt.Where("is_approved = ?", *filter.Approved)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.User
	err := stmt.
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *domain.User) error {
	if user == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE users SET name = ?, email = ?, is_admin = ?, is_approved = ?, updated_at = ? WHERE id = ?`,
		user.Name,
		user.Email,
		user.IsAdmin,
		user.IsApproved,
		user.UpdatedAt,
		user.ID,
	).Error
}
