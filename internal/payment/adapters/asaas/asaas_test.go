package asaas

import (
	"context"
	"net/http"
	"testing"

	"github.com/hubln/hubln/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	a := New()
	ctx := context.Background()

	assert.NoError(t, a.Verify(ctx, []byte(`{"event":"PAYMENT_RECEIVED"}`), http.Header{}))
	assert.ErrorIs(t, a.Verify(ctx, []byte(`{not json`), http.Header{}), domain.ErrInvalidPayload)
}

func TestParse_PaymentReceived(t *testing.T) {
	a := New()

	event, err := a.Parse(context.Background(),
		[]byte(`{"id":"evt_1","event":"PAYMENT_RECEIVED","payment":{"id":"pay_1","status":"RECEIVED","externalReference":"submission_42"}}`))
	require.NoError(t, err)
	assert.Equal(t, ProviderName, event.Provider)
	assert.Equal(t, "evt_1", event.ProviderEventID)
	assert.Equal(t, domain.EventTypePaymentReceived, event.Type)
	assert.Equal(t, "pay_1", event.BillingID)
	assert.Equal(t, "submission_42", event.ExternalReference)
	assert.Equal(t, "RECEIVED", event.RawStatus)
}

func TestParse_FallsBackToSyntheticEventID(t *testing.T) {
	a := New()

	event, err := a.Parse(context.Background(),
		[]byte(`{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_1","status":"RECEIVED"}}`))
	require.NoError(t, err)
	assert.Equal(t, "PAYMENT_RECEIVED:pay_1", event.ProviderEventID)
}

func TestParse_Rejections(t *testing.T) {
	a := New()
	ctx := context.Background()

	_, err := a.Parse(ctx, []byte(`{not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = a.Parse(ctx, []byte(`{"payment":{"id":"pay_1"}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = a.Parse(ctx, []byte(`{"event":"PAYMENT_RECEIVED","payment":{"id":""}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = a.Parse(ctx, []byte(`{"event":"PAYMENT_OVERDUE","payment":{"id":"pay_1"}}`))
	assert.ErrorIs(t, err, domain.ErrEventIgnored)
}
