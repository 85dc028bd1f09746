package services

import (
	"context"
	"time"

	"script9/models"
	"script9/types"
)

// BookingRepository is the persistence BookingService needs.
type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error
	HasOverlap(ctx context.Context, propertyID string, start, end time.Time) (bool, error)
	Search(ctx context.Context, f types.BookingFilter, page types.Page) ([]models.Booking, int64, error)
	Stats(ctx context.Context, f types.BookingFilter) (types.BookingStats, error)
	Upcoming(ctx context.Context, f types.BookingFilter, now time.Time, limit int) ([]models.Booking, error)
	FindEndedConfirmed(ctx context.Context, now time.Time, limit int) ([]models.Booking, error)
}

type PropertyRepository interface {
	FindByID(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Save(ctx context.Context, property *models.Property) error
	List(ctx context.Context, f types.PropertyFilter, page types.Page) ([]models.Property, int64, error)
	ListAll(ctx context.Context, f types.PropertyFilter) ([]models.Property, error)
	AppendImage(ctx context.Context, id, url string) error
}

type ConversationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Conversation, error)
	FindByBookingID(ctx context.Context, bookingID string) (*models.Conversation, error)
	Create(ctx context.Context, conversation *models.Conversation) error
	ListForUser(ctx context.Context, userID string, page types.Page) ([]models.Conversation, int64, error)
	ResetUnread(ctx context.Context, conversationID, userID string) error
	UnreadTotal(ctx context.Context, userID string) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByConversation(ctx context.Context, conversationID string, page types.Page) ([]models.Message, int64, error)
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error)
}

type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*models.Review, error)
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	ListByProperty(ctx context.Context, propertyID string, page types.Page) ([]models.Review, int64, error)
	ListRatings(ctx context.Context, propertyID string) ([]models.Review, error)
}

type ChatHistoryRepository interface {
	Create(ctx context.Context, entries []models.ChatHistory) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
}
