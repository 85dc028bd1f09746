package repository

import (
	"context"

	"script9/models"
	"script9/types"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conversation).Error; err != nil {
		return nil, translate(err, "conversation")
	}
	return &conversation, nil
}

func (r *ConversationRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&conversation).Error; err != nil {
		return nil, translate(err, "conversation")
	}
	return &conversation, nil
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	return translate(r.db.WithContext(ctx).Create(conversation).Error, "conversation")
}

// ListForUser returns the user's conversations by latest activity.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string, page types.Page) ([]models.Conversation, int64, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("guest_id = ? OR host_id = ?", userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "conversations")
	}

	var conversations []models.Conversation
	err := q.Order("last_message_at DESC NULLS LAST").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, translate(err, "conversations")
	}
	return conversations, total, nil
}

// ResetUnread zeroes the counter that belongs to userID.
func (r *ConversationRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	err := r.db.WithContext(ctx).Exec(`UPDATE conversations SET
		guest_unread_count = CASE WHEN guest_id = ? THEN 0 ELSE guest_unread_count END,
		host_unread_count = CASE WHEN host_id = ? THEN 0 ELSE host_unread_count END
		WHERE id = ?`, userID, userID, conversationID).Error
	return translate(err, "conversation")
}

// UnreadTotal sums the user's counter across every conversation they take part in.
func (r *ConversationRepository) UnreadTotal(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Select(`COALESCE(SUM(
			CASE WHEN guest_id = ? THEN guest_unread_count ELSE 0 END +
			CASE WHEN host_id = ? THEN host_unread_count ELSE 0 END), 0)`, userID, userID).
		Where("guest_id = ? OR host_id = ?", userID, userID).
		Scan(&total).Error
	if err != nil {
		return 0, translate(err, "conversations")
	}
	return total, nil
}
