package domain

import (
	"context"
	"errors"
	"time"

	"github.com/hubln/hubln/pkg/db/pagination"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByReferralCode(ctx context.Context, code string) (*Response, error)
	Approve(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type RegisterRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	ReferredBy *string `json:"referred_by,omitempty"`
}

type ListRequest struct {
	ReferredBy string
	Approved   *bool
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Users    []Response          `json:"users"`
}

type Response struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   *string   `json:"referred_by,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrEmailTaken      = errors.New("email_taken")
	ErrInvalidReferrer = errors.New("invalid_referrer")
	ErrNotFound        = errors.New("user_not_found")
	ErrInvalidID       = errors.New("invalid_id")
)
