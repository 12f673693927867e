package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// StartCheckout creates (or refreshes) the user's pending subscription
	// and binds it to the provider billing id.
	StartCheckout(ctx context.Context, req StartCheckoutRequest) (*Response, error)
	StartTrial(ctx context.Context, userID string) (*Response, error)
	// ActivateByBillingID applies a paid webhook event. Activating an
	// already-active subscription is a benign no-op: the end date is not
	// shifted twice.
	ActivateByBillingID(ctx context.Context, billingID string) (*Response, bool, error)
	GetForUser(ctx context.Context, userID string) (*Response, error)
}

type StartCheckoutRequest struct {
	UserID    string `json:"user_id"`
	BillingID string `json:"billing_id"`
}

type Response struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Status         Status     `json:"status"`
	BillingID      string     `json:"billing_id,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	TrialExpiresAt *time.Time `json:"trial_expires_at,omitempty"`
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidBilling = errors.New("invalid_billing_id")
	ErrNotFound       = errors.New("subscription_not_found")
	ErrAlreadyOnTrial = errors.New("trial_already_used")
)
