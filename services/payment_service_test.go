package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "script9/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeCheckoutSessions struct {
	sessions map[string]*stripe.CheckoutSession
	err      error
}

func (f fakeCheckoutSessions) Get(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[id]
	if !ok {
		return nil, &stripe.Error{HTTPStatusCode: http.StatusNotFound, Code: stripe.ErrorCodeResourceMissing}
	}
	return sess, nil
}

func TestGetCheckoutSession(t *testing.T) {
	svc := NewPaymentService(PaymentServiceOptions{Sessions: fakeCheckoutSessions{sessions: map[string]*stripe.CheckoutSession{
		"cs_eur": {
			ID:              "cs_eur",
			Status:          stripe.CheckoutSessionStatusComplete,
			PaymentStatus:   stripe.CheckoutSessionPaymentStatusPaid,
			AmountTotal:     12550,
			Currency:        stripe.CurrencyEUR,
			CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "guest@example.com"},
			Metadata:        map[string]string{"bookingId": "booking-1"},
		},
		"cs_vnd": {ID: "cs_vnd", AmountTotal: 500000, Currency: "vnd", CustomerEmail: "a@b.c"},
	}}})
	ctx := context.Background()

	summary, err := svc.GetCheckoutSession(ctx, "cs_eur")
	require.NoError(t, err)
	assert.Equal(t, "complete", summary.Status)
	assert.Equal(t, "paid", summary.PaymentStatus)
	assert.Equal(t, 125.5, summary.AmountTotal)
	assert.Equal(t, "EUR", summary.Currency)
	assert.Equal(t, "guest@example.com", summary.CustomerEmail)
	assert.Equal(t, "booking-1", summary.BookingID)

	summary, err = svc.GetCheckoutSession(ctx, "cs_vnd")
	require.NoError(t, err)
	assert.Equal(t, 500000.0, summary.AmountTotal)
	assert.Equal(t, "a@b.c", summary.CustomerEmail)

	_, err = svc.GetCheckoutSession(ctx, "cs_missing")
	requireKind(t, err, apperrors.KindNotFound)

	_, err = svc.GetCheckoutSession(ctx, "  ")
	requireKind(t, err, apperrors.KindBadRequest)
}

func TestGetCheckoutSessionFailures(t *testing.T) {
	unconfigured := NewPaymentService(PaymentServiceOptions{})
	_, err := unconfigured.GetCheckoutSession(context.Background(), "cs_1")
	requireKind(t, err, apperrors.KindBadRequest)

	broken := NewPaymentService(PaymentServiceOptions{Sessions: fakeCheckoutSessions{err: errors.New("connection reset")}})
	_, err = broken.GetCheckoutSession(context.Background(), "cs_1")
	requireKind(t, err, apperrors.KindBadGateway)
}
