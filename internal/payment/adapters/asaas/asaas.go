package asaas

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hubln/hubln/internal/payment/domain"
)

const ProviderName = "asaas"

// Adapter handles the invoice/PIX provider. The endpoint is trusted (no
// signature); Verify only insists the body is structurally plausible, the
// real validation happens in Parse.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Provider() string { return ProviderName }

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	if !json.Valid(payload) {
		return domain.ErrInvalidPayload
	}
	return nil
}

type paymentEvent struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Payment struct {
		ID                string `json:"id"`
		Status            string `json:"status"`
		ExternalReference string `json:"externalReference"`
	} `json:"payment"`
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*domain.PaymentEvent, error) {
	var event paymentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	eventType := strings.TrimSpace(event.Event)
	if eventType == "" || strings.TrimSpace(event.Payment.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	switch eventType {
	case "PAYMENT_RECEIVED":
		providerEventID := strings.TrimSpace(event.ID)
		if providerEventID == "" {
			providerEventID = eventType + ":" + event.Payment.ID
		}
		return &domain.PaymentEvent{
			Provider:          ProviderName,
			ProviderEventID:   providerEventID,
			Type:              domain.EventTypePaymentReceived,
			BillingID:         strings.TrimSpace(event.Payment.ID),
			ExternalReference: strings.TrimSpace(event.Payment.ExternalReference),
			RawStatus:         strings.TrimSpace(event.Payment.Status),
			OccurredAt:        time.Now().UTC(),
			RawPayload:        payload,
		}, nil
	default:
		return nil, domain.ErrEventIgnored
	}
}
