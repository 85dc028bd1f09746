package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"script9/dto"
	apperrors "script9/errors"
	"script9/services/logger"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CheckoutSessionGetter is the slice of the Stripe client the payment service reads with.
type CheckoutSessionGetter interface {
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// zeroDecimalCurrencies are charged in whole units by Stripe.
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

type PaymentServiceOptions struct {
	// SecretKey builds a Stripe client when Sessions is nil.
	SecretKey string
	Sessions  CheckoutSessionGetter
	Logger    logger.Logger
}

type PaymentService struct {
	sessions CheckoutSessionGetter
	logger   logger.Logger
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	s := &PaymentService{sessions: opts.Sessions, logger: opts.Logger}
	if s.sessions == nil && opts.SecretKey != "" {
		s.sessions = client.New(opts.SecretKey, nil).CheckoutSessions
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// GetCheckoutSession reads back a hosted checkout session for the confirmation page.
func (s *PaymentService) GetCheckoutSession(ctx context.Context, sessionID string) (*dto.CheckoutSessionSummary, error) {
	if s.sessions == nil {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "payments are not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperrors.BadRequest(apperrors.ErrCodeRequiredField, "session id is required")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := s.sessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && (stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing) {
			return nil, apperrors.NotFound("checkout session not found")
		}
		s.logger.WithFields(logger.Fields{"sessionId": sessionID}).Error("stripe checkout session: %v", err)
		return nil, apperrors.BadGateway("payment provider unavailable", err)
	}
	return summarizeCheckoutSession(sess), nil
}

func summarizeCheckoutSession(sess *stripe.CheckoutSession) *dto.CheckoutSessionSummary {
	currency := strings.ToLower(string(sess.Currency))
	amount := float64(sess.AmountTotal)
	if !zeroDecimalCurrencies[currency] {
		amount /= 100
	}

	email := sess.CustomerEmail
	if email == "" && sess.CustomerDetails != nil {
		email = sess.CustomerDetails.Email
	}

	return &dto.CheckoutSessionSummary{
		ID:            sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   amount,
		Currency:      strings.ToUpper(currency),
		CustomerEmail: email,
		BookingID:     sess.Metadata["bookingId"],
	}
}
