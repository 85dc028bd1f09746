package repository

import (
	"context"
	"time"

	"script9/models"
	"script9/types"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message. The messages_after_insert trigger maintains the conversation.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	return translate(r.db.WithContext(ctx).Create(message).Error, "message")
}

func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string, page types.Page) ([]models.Message, int64, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "messages")
	}

	var messages []models.Message
	err := q.Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, translate(err, "messages")
	}
	return messages, total, nil
}

// MarkRead flags every unread message not sent by readerID.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, translate(res.Error, "messages")
	}
	return res.RowsAffected, nil
}
