package builders

import (
	"time"

	"script9/models"
)

// BookingBuilder assembles a new booking step by step.
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder starts a pending booking.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: models.BookingStatusPending},
	}
}

// ForProperty sets the property and takes the host from it.
func (b *BookingBuilder) ForProperty(property *models.Property) *BookingBuilder {
	b.booking.PropertyID = property.ID
	b.booking.HostID = property.HostID
	return b
}

func (b *BookingBuilder) WithGuest(guestID string) *BookingBuilder {
	b.booking.GuestID = guestID
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.booking.StartTime = start.UTC()
	b.booking.EndTime = end.UTC()
	return b
}

func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.booking.Notes = notes
	return b
}

func (b *BookingBuilder) WithPaymentSession(sessionID string) *BookingBuilder {
	b.booking.PaymentSessionID = sessionID
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
