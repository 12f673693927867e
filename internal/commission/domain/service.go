package domain

import (
	"context"
	"errors"
)

type Service interface {
	// CalculateChain walks the referral chain upward from the buyer and
	// computes the margin each level captures. A broken referral link
	// truncates the chain; only a missing product is an error.
	CalculateChain(ctx context.Context, req CalculateRequest) ([]ChainEntry, error)

	// Record computes the chain for a paid submission and persists ledger
	// rows for levels >= 1. Re-recording the same submission is a no-op.
	Record(ctx context.Context, req RecordRequest) error

	Release(ctx context.Context) (int64, error)
	Summary(ctx context.Context, userID string) (*SummaryResponse, error)
	ListForUser(ctx context.Context, userID string, status string) ([]EarningResponse, error)
}

type CalculateRequest struct {
	BuyerID   string `json:"buyer_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type RecordRequest struct {
	SubmissionID string `json:"submission_id"`
	BuyerID      string `json:"buyer_id"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
}

type SummaryResponse struct {
	UserID    string `json:"user_id"`
	Pending   string `json:"pending"`
	Available string `json:"available"`
}

type EarningResponse struct {
	ID                string `json:"id"`
	SubmissionID      string `json:"submission_id"`
	Level             int    `json:"level"`
	CommissionPerUnit string `json:"commission_per_unit"`
	TotalCommission   string `json:"total_commission"`
	Status            string `json:"status"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrBuyerNotFound   = errors.New("buyer_not_found")
	ErrProductNotFound = errors.New("product_not_found")
)
