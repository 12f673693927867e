package domain

import (
	"context"
	"net/http"
)

// Service ingests provider webhooks and reconciles them into subscription and
// submission state.
type Service interface {
	Ingest(ctx context.Context, provider string, payload []byte, headers http.Header) (*Result, error)
}

type Result struct {
	Processed     bool     `json:"processed"`
	PaymentID     string   `json:"paymentId,omitempty"`
	SubmissionIDs []string `json:"submissionIds,omitempty"`
	Message       string   `json:"message"`
}

// StatusService answers the client polling endpoint. Status strings mirror
// the provider vocabulary; display mapping belongs to the caller.
type StatusService interface {
	Check(ctx context.Context, paymentID string) (*StatusResult, error)
}

type StatusResult struct {
	Status string `json:"status"`
	IsPaid bool   `json:"isPaid"`
}

const (
	RawStatusPending   = "PENDING"
	RawStatusReceived  = "RECEIVED"
	RawStatusConfirmed = "CONFIRMED"
	RawStatusOverdue   = "OVERDUE"
)
