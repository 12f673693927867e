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
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice string `json:"base_price"`
}

type UpdateRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	BasePrice *string `json:"base_price,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type ListRequest struct {
	Category string
	Active   *bool
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Products []Response          `json:"products"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BasePrice string    `json:"base_price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("product_not_found")
)
