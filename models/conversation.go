package models

import (
	"time"

	"gorm.io/gorm"
)

type Conversation struct {
	ID                 string     `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID          string     `json:"bookingId" gorm:"type:uuid;not null;uniqueIndex"`
	GuestID            string     `json:"guestId" gorm:"type:uuid;not null;index"`
	HostID             string     `json:"hostId" gorm:"type:uuid;not null;index"`
	PropertyID         string     `json:"propertyId" gorm:"type:uuid;not null"`
	LastMessageAt      *time.Time `json:"lastMessageAt"`
	LastMessagePreview string     `json:"lastMessagePreview"`
	GuestUnreadCount   int        `json:"guestUnreadCount" gorm:"not null;default:0"`
	HostUnreadCount    int        `json:"hostUnreadCount" gorm:"not null;default:0"`
	CreatedAt          time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// HasParticipant reports whether userID is the conversation's guest or host.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.GuestID == userID || c.HostID == userID)
}

// RecipientOf returns the other party of a message sent by senderID.
func (c *Conversation) RecipientOf(senderID string) string {
	if senderID == c.GuestID {
		return c.HostID
	}
	return c.GuestID
}

// UnreadFor returns the unread counter that belongs to userID.
func (c *Conversation) UnreadFor(userID string) int {
	switch userID {
	case c.GuestID:
		return c.GuestUnreadCount
	case c.HostID:
		return c.HostUnreadCount
	}
	return 0
}
