package services

import (
	"context"
	"time"

	"script9/access"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/repository"
	"script9/services/logger"
	"script9/services/notification"
	"script9/types"
	"script9/validator"
)

type MessageServiceOptions struct {
	Conversations ConversationRepository
	Messages      MessageRepository
	Bookings      BookingRepository
	Notifier      notification.Service
	Logger        logger.Logger
	Now           func() time.Time
}

// MessageService handles the booking bound guest/host conversations.
// Conversation counters and previews are maintained by the store trigger.
type MessageService struct {
	conversations ConversationRepository
	messages      MessageRepository
	bookings      BookingRepository
	notifier      notification.Service
	logger        logger.Logger
	now           func() time.Time
}

func NewMessageService(opts MessageServiceOptions) *MessageService {
	s := &MessageService{
		conversations: opts.Conversations,
		messages:      opts.Messages,
		bookings:      opts.Bookings,
		notifier:      opts.Notifier,
		logger:        opts.Logger,
		now:           opts.Now,
	}
	if s.notifier == nil {
		s.notifier = notification.Noop{}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func conversationResource(c *models.Conversation) access.Resource {
	return access.Resource{GuestID: c.GuestID, HostID: c.HostID}
}

// member loads a conversation and checks userID takes part in it.
func (s *MessageService) member(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	actor := access.Actor{UserID: userID}
	if err := access.Require(actor, access.ConversationJoin, conversationResource(conversation)); err != nil {
		return nil, err
	}
	return conversation, nil
}

// CreateOrGetConversation returns the conversation of a booking, creating it on first use.
func (s *MessageService) CreateOrGetConversation(ctx context.Context, actor access.Actor, req dto.CreateConversationRequest) (*models.Conversation, error) {
	existing, err := s.conversations.FindByBookingID(ctx, req.BookingID)
	if err == nil {
		if err := access.Require(actor, access.ConversationJoin, conversationResource(existing)); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	booking, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if (req.GuestID != "" && req.GuestID != booking.GuestID) ||
		(req.HostID != "" && req.HostID != booking.HostID) ||
		(req.PropertyID != "" && req.PropertyID != booking.PropertyID) {
		return nil, apperrors.BadRequest(apperrors.ErrCodeValidation, "conversation participants do not match the booking")
	}
	if err := access.Require(actor, access.ConversationJoin, bookingResource(booking)); err != nil {
		return nil, err
	}

	conversation := &models.Conversation{
		BookingID:  booking.ID,
		GuestID:    booking.GuestID,
		HostID:     booking.HostID,
		PropertyID: booking.PropertyID,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		if repository.IsDuplicate(err) {
			return s.conversations.FindByBookingID(ctx, req.BookingID)
		}
		return nil, err
	}
	return conversation, nil
}

func (s *MessageService) SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	conversation, err := s.member(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	body, err := validator.NormalizeMessageText(text)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		MessageText:    body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	recipient := conversation.RecipientOf(senderID)
	if err := s.notifier.NotifyUser(recipient, notification.MessageCreated(message)); err != nil {
		s.logger.Warn("notify %s about message %s: %v", recipient, message.ID, err)
	}
	return message, nil
}

func (s *MessageService) GetUserConversations(ctx context.Context, userID string, page types.Page) ([]models.Conversation, int64, error) {
	return s.conversations.ListForUser(ctx, userID, page.Normalize())
}

func (s *MessageService) GetConversationMessages(ctx context.Context, conversationID, userID string, page types.Page) ([]models.Message, int64, error) {
	if _, err := s.member(ctx, conversationID, userID); err != nil {
		return nil, 0, err
	}
	return s.messages.ListByConversation(ctx, conversationID, page.Normalize())
}

// MarkMessagesAsRead flags the other party's messages as read and resets the caller's counter.
func (s *MessageService) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error) {
	if _, err := s.member(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	updated, err := s.messages.MarkRead(ctx, conversationID, userID, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.conversations.ResetUnread(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	return updated, nil
}

// GetUnreadCount is a best effort badge counter: store failures yield 0.
func (s *MessageService) GetUnreadCount(ctx context.Context, userID string) int64 {
	total, err := s.conversations.UnreadTotal(ctx, userID)
	if err != nil {
		s.logger.WithFields(logger.Fields{"userId": userID}).Error("unread count: %v", err)
		return 0
	}
	return total
}
