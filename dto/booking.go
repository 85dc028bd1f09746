package dto

import (
	"time"

	"script9/types"
)

type CreateBookingRequest struct {
	PropertyID string    `json:"propertyId" binding:"required,uuid"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Notes      string    `json:"notes" binding:"max=2000"`
	// GuestID is ignored; the authenticated user is always the guest.
	GuestID          string `json:"guestId,omitempty"`
	PaymentSessionID string `json:"paymentSessionId,omitempty"`
}

// SlotRequest identifies a time range on a property.
type SlotRequest struct {
	PropertyID string    `json:"propertyId" binding:"required,uuid"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingQuery struct {
	PageQuery
	GuestID    string     `form:"guestId" binding:"omitempty,uuid"`
	HostID     string     `form:"hostId" binding:"omitempty,uuid"`
	PropertyID string     `form:"propertyId" binding:"omitempty,uuid"`
	Status     string     `form:"status" binding:"omitempty,bookingstatus"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
}

func (q BookingQuery) ToFilter() types.BookingFilter {
	return types.BookingFilter{
		GuestID:    q.GuestID,
		HostID:     q.HostID,
		PropertyID: q.PropertyID,
		Status:     q.Status,
		From:       q.From,
		To:         q.To,
	}
}

type UpcomingQuery struct {
	Limit int `form:"limit" binding:"min=0,max=100"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type PriceResponse struct {
	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency"`
	Units      int64   `json:"units"`
	PriceUnit  string  `json:"priceUnit"`
}
