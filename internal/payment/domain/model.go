package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventRecord is the dedup ledger for inbound webhooks. One row per
// (provider, provider_event_id); replays short-circuit on it.
type EventRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Provider        string         `json:"provider" gorm:"type:varchar(32);not null;uniqueIndex:idx_provider_event"`
	ProviderEventID string         `json:"provider_event_id" gorm:"type:varchar(128);not null;uniqueIndex:idx_provider_event"`
	EventType       string         `json:"event_type" gorm:"type:varchar(64);not null"`
	BillingID       string         `json:"billing_id" gorm:"type:varchar(64);index"`
	Payload         datatypes.JSON `json:"payload" gorm:"not null"`
	ReceivedAt      time.Time      `json:"received_at" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processed_at"`
}

func (EventRecord) TableName() string { return "payment_events" }

const EventTypePaymentReceived = "payment_received"

// PaymentEvent is the canonical event parsed out of a provider webhook.
type PaymentEvent struct {
	Provider          string
	ProviderEventID   string
	Type              string
	BillingID         string
	ExternalReference string
	RawStatus         string
	OccurredAt        time.Time
	RawPayload        []byte
}
