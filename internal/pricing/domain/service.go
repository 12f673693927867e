package domain

import (
	"context"
	"errors"
)

type Service interface {
	SetPrice(ctx context.Context, req SetPriceRequest) (*PriceResponse, error)
	RemovePrice(ctx context.Context, userID, productID string) error
	// ResolveEffectivePrice reports what a user pays/charges for a product:
	// their own override when present (CanSell true), otherwise just the
	// catalog base price. Pure read.
	ResolveEffectivePrice(ctx context.Context, userID, productID string) (*Quote, error)
	ListForUser(ctx context.Context, userID string) ([]PriceResponse, error)
}

type SetPriceRequest struct {
	UserID      string `json:"user_id"`
	ProductID   string `json:"product_id"`
	CustomPrice string `json:"custom_price"`
}

type PriceResponse struct {
	UserID      string `json:"user_id"`
	ProductID   string `json:"product_id"`
	CustomPrice string `json:"custom_price"`
}

type Quote struct {
	BasePrice string  `json:"base_price"`
	UserPrice *string `json:"user_price"`
	CanSell   bool    `json:"can_sell"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrProductNotFound = errors.New("product_not_found")
)
