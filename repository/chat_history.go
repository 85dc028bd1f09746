package repository

import (
	"context"

	"script9/models"

	"gorm.io/gorm"
)

type ChatHistoryRepository struct {
	db *gorm.DB
}

func NewChatHistoryRepository(db *gorm.DB) *ChatHistoryRepository {
	return &ChatHistoryRepository{db: db}
}

func (r *ChatHistoryRepository) Create(ctx context.Context, entries []models.ChatHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&entries).Error, "chat history")
}
