package models

import (
	"time"

	"gorm.io/gorm"
)

type ChatHistory struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    *string   `json:"userId" gorm:"type:uuid;index"`
	SessionID string    `json:"sessionId" gorm:"index"`
	Widget    string    `json:"widget" gorm:"type:varchar(64)"`
	Sender    string    `json:"sender"` // "user" or "assistant"
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (h *ChatHistory) BeforeCreate(tx *gorm.DB) error {
	assignID(&h.ID)
	return nil
}
