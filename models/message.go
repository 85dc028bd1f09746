package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageLength is the largest message body accepted, in characters.
const MaxMessageLength = 2000

type Message struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID string     `json:"conversationId" gorm:"type:uuid;not null;index"`
	SenderID       string     `json:"senderId" gorm:"type:uuid;not null"`
	MessageText    string     `json:"messageText" gorm:"type:text;not null"`
	IsRead         bool       `json:"isRead" gorm:"not null;default:false"`
	ReadAt         *time.Time `json:"readAt"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
