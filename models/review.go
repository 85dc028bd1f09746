package models

import (
	"time"

	"gorm.io/gorm"
)

// ReviewEditWindow is how long the author may edit a review after posting it.
const ReviewEditWindow = 24 * time.Hour

// CategoryRatings are the optional per-aspect scores of a review.
type CategoryRatings struct {
	Cleanliness   *int `json:"cleanliness,omitempty"`
	Communication *int `json:"communication,omitempty"`
	Accuracy      *int `json:"accuracy,omitempty"`
	Location      *int `json:"location,omitempty"`
	Value         *int `json:"value,omitempty"`
}

// Named lists the categories with their json names, in a stable order.
func (r CategoryRatings) Named() []NamedRating {
	return []NamedRating{
		{"cleanliness", r.Cleanliness},
		{"communication", r.Communication},
		{"accuracy", r.Accuracy},
		{"location", r.Location},
		{"value", r.Value},
	}
}

type NamedRating struct {
	Name  string
	Value *int
}

type Review struct {
	ID               string `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID        string `json:"bookingId" gorm:"type:uuid;not null;uniqueIndex"`
	PropertyID       string `json:"propertyId" gorm:"type:uuid;not null;index"`
	GuestID          string `json:"guestId" gorm:"type:uuid;not null"`
	HostID           string `json:"hostId" gorm:"type:uuid;not null"`
	Rating           int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CategoryRatings  `gorm:"embedded"`
	ReviewText       string     `json:"reviewText" gorm:"type:text"`
	HostResponse     *string    `json:"hostResponse,omitempty" gorm:"type:text"`
	HostResponseDate *time.Time `json:"hostResponseDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// EditableAt reports whether the review is still inside its edit window at now.
func (r *Review) EditableAt(now time.Time) bool {
	return now.Sub(r.CreatedAt) <= ReviewEditWindow
}
