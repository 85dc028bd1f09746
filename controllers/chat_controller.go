package controllers

import (
	"context"

	"script9/constants"
	"script9/dto"
	"script9/middleware"
	"script9/response"
	"script9/services/logger"

	"github.com/gin-gonic/gin"
)

type ChatAPI interface {
	Send(ctx context.Context, widget string, userID *string, req dto.ChatRequest) (*dto.ChatReply, error)
}

type ChatController struct {
	base
	chat ChatAPI
}

func NewChatController(chat ChatAPI, log logger.Logger) *ChatController {
	return &ChatController{base: newBase(log), chat: chat}
}

// Send godoc
// @Summary  Forward a chat widget message to its assistant
// @Tags     chat
// @Accept   json
// @Param    widget path string true "widget name"
// @Param    body body dto.ChatRequest true "message or history"
// @Success  200 {object} response.Response{data=dto.ChatReply}
// @Failure  400,404,429,502 {object} response.ErrorBody
// @Router   /chat/{widget} [post]
func (ctrl *ChatController) Send(c *gin.Context) {
	var req dto.ChatRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	if req.SessionID == "" {
		req.SessionID = c.GetString(constants.ContextSessionIDKey)
	}

	var userID *string
	if actor, ok := middleware.GetActor(c); ok {
		userID = &actor.UserID
	}

	reply, err := ctrl.chat.Send(c.Request.Context(), c.Param("widget"), userID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, reply)
}
