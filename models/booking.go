package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses hold a time slot.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether a booking in this status blocks its slot.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID               string        `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID       string        `json:"propertyId" gorm:"type:uuid;not null;index"`
	Property         *Property     `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	GuestID          string        `json:"guestId" gorm:"type:uuid;not null;index"`
	HostID           string        `json:"hostId" gorm:"type:uuid;not null;index"`
	StartTime        time.Time     `json:"startTime" gorm:"not null;index"`
	EndTime          time.Time     `json:"endTime" gorm:"not null"`
	Status           BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	TotalPrice       float64       `json:"totalPrice" gorm:"not null"`
	Notes            string        `json:"notes,omitempty" gorm:"type:text"`
	PaymentSessionID string        `json:"paymentSessionId,omitempty"`
	CreatedAt        time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// Overlaps reports whether [start, end) intersects the booking's slot.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
