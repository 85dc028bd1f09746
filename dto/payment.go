package dto

// CheckoutSessionSummary is the confirmation data read back from a completed checkout.
type CheckoutSessionSummary struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	AmountTotal   float64 `json:"amountTotal"`
	Currency      string  `json:"currency"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	BookingID     string  `json:"bookingId,omitempty"`
}
