package controllers

import (
	"context"

	"script9/access"
	"script9/dto"
	"script9/models"
	"script9/response"
	"script9/services/logger"
	"script9/types"

	"github.com/gin-gonic/gin"
)

type MessageAPI interface {
	CreateOrGetConversation(ctx context.Context, actor access.Actor, req dto.CreateConversationRequest) (*models.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error)
	GetUserConversations(ctx context.Context, userID string, page types.Page) ([]models.Conversation, int64, error)
	GetConversationMessages(ctx context.Context, conversationID, userID string, page types.Page) ([]models.Message, int64, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error)
	GetUnreadCount(ctx context.Context, userID string) int64
}

type ConversationController struct {
	base
	messages MessageAPI
}

func NewConversationController(messages MessageAPI, log logger.Logger) *ConversationController {
	return &ConversationController{base: newBase(log), messages: messages}
}

// ListConversations godoc
// @Summary  Conversations of the caller, most recent activity first
// @Tags     conversations
// @Success  200 {object} dto.PaginatedResponse[[]models.Conversation]
// @Router   /conversations [get]
func (ctrl *ConversationController) ListConversations(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var q dto.PageQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	page := q.ToPage()
	list, total, err := ctrl.messages.GetUserConversations(c.Request.Context(), actor.UserID, page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.SuccessWithPagination(c, list, page.Page, page.Limit, total)
}

// CreateConversation godoc
// @Summary  Open or fetch the conversation of a booking
// @Tags     conversations
// @Accept   json
// @Param    body body dto.CreateConversationRequest true "booking"
// @Success  200 {object} response.Response{data=models.Conversation}
// @Router   /conversations [post]
func (ctrl *ConversationController) CreateConversation(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.CreateConversationRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	conversation, err := ctrl.messages.CreateOrGetConversation(c.Request.Context(), actor, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, conversation)
}

// UnreadCount godoc
// @Summary  Total unread messages of the caller
// @Tags     conversations
// @Success  200 {object} response.Response{data=dto.UnreadCountResponse}
// @Router   /conversations/unread-count [get]
func (ctrl *ConversationController) UnreadCount(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	response.Success(c, dto.UnreadCountResponse{Count: ctrl.messages.GetUnreadCount(c.Request.Context(), actor.UserID)})
}

// ListMessages godoc
// @Summary  Messages of a conversation, oldest first
// @Tags     conversations
// @Param    id path string true "conversation id"
// @Success  200 {object} dto.PaginatedResponse[[]models.Message]
// @Router   /conversations/{id}/messages [get]
func (ctrl *ConversationController) ListMessages(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var q dto.PageQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	page := q.ToPage()
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	messages, total, err := ctrl.messages.GetConversationMessages(c.Request.Context(), id, actor.UserID, page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.SuccessWithPagination(c, messages, page.Page, page.Limit, total)
}

// SendMessage godoc
// @Summary  Post a message to a conversation
// @Tags     conversations
// @Accept   json
// @Param    id path string true "conversation id"
// @Param    body body dto.SendMessageRequest true "message"
// @Success  201 {object} response.Response{data=models.Message}
// @Router   /conversations/{id}/messages [post]
func (ctrl *ConversationController) SendMessage(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	msg, err := ctrl.messages.SendMessage(c.Request.Context(), id, actor.UserID, req.MessageText)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Created(c, msg)
}

// MarkRead godoc
// @Summary  Mark the other party's messages as read
// @Tags     conversations
// @Param    id path string true "conversation id"
// @Success  200 {object} response.Response{data=dto.MarkReadResponse}
// @Router   /conversations/{id}/read [post]
func (ctrl *ConversationController) MarkRead(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	updated, err := ctrl.messages.MarkMessagesAsRead(c.Request.Context(), id, actor.UserID)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, dto.MarkReadResponse{Updated: updated})
}
