package domain

import (
	"context"
	"errors"
	"time"

	"github.com/hubln/hubln/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListByUser(ctx context.Context, req ListRequest) (ListResponse, error)
	// MarkPaidByExternalReference applies a paid event. Re-applying for an
	// already-paid reference is a benign no-op: the same submissions come
	// back with Updated == 0.
	MarkPaidByExternalReference(ctx context.Context, ref string) (*PaidResult, error)
}

type CreateRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ListRequest struct {
	UserID string
	Paid   *bool
	Page   pagination.Pagination
}

type ListResponse struct {
	PageInfo    pagination.PageInfo `json:"page_info"`
	Submissions []Response          `json:"submissions"`
}

type Response struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	ProductID         string     `json:"product_id"`
	Quantity          int        `json:"quantity"`
	UnitPrice         string     `json:"unit_price"`
	TotalAmount       string     `json:"total_amount"`
	ExternalReference string     `json:"external_reference"`
	Paid              bool       `json:"paid"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type PaidResult struct {
	Submissions []Submission
	Updated     int64
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrNotFound        = errors.New("submission_not_found")
	ErrUserNotFound    = errors.New("user_not_found")
	ErrProductNotFound = errors.New("product_not_found")
)
