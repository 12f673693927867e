package abacatepay

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hubln/hubln/internal/payment/domain"
)

const ProviderName = "abacatepay"

// Adapter handles the PIX QR-code provider. Deliveries carry a shared secret
// in the X-Webhook-Secret header; only billing.paid mutates state.
type Adapter struct {
	webhookSecret string
}

func New(webhookSecret string) *Adapter {
	return &Adapter{webhookSecret: webhookSecret}
}

func (a *Adapter) Provider() string { return ProviderName }

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	if a.webhookSecret == "" {
		return domain.ErrInvalidSignature
	}
	got := strings.TrimSpace(headers.Get("X-Webhook-Secret"))
	if got == "" {
		return domain.ErrInvalidSignature
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.webhookSecret)) != 1 {
		return domain.ErrInvalidSignature
	}
	return nil
}

type billingEvent struct {
	Event string `json:"event"`
	Data  struct {
		PixQrCode struct {
			ID string `json:"id"`
		} `json:"pixQrCode"`
	} `json:"data"`
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*domain.PaymentEvent, error) {
	var event billingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	eventType := strings.TrimSpace(event.Event)
	if eventType == "" {
		return nil, domain.ErrInvalidEvent
	}

	switch eventType {
	case "billing.paid":
		billingID := strings.TrimSpace(event.Data.PixQrCode.ID)
		if billingID == "" {
			return nil, domain.ErrInvalidEvent
		}
		return &domain.PaymentEvent{
			Provider:        ProviderName,
			ProviderEventID: eventType + ":" + billingID,
			Type:            domain.EventTypePaymentReceived,
			BillingID:       billingID,
			RawStatus:       domain.RawStatusConfirmed,
			OccurredAt:      time.Now().UTC(),
			RawPayload:      payload,
		}, nil
	default:
		return nil, domain.ErrEventIgnored
	}
}
