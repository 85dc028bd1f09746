package controllers

import (
	"net/http"

	"script9/services/logger"

	"github.com/gin-gonic/gin"
)

// SessionHub upgrades a request into a websocket session owned by userID.
type SessionHub interface {
	HandleRequest(w http.ResponseWriter, r *http.Request, userID string) error
}

type WSController struct {
	base
	hub SessionHub
}

func NewWSController(hub SessionHub, log logger.Logger) *WSController {
	return &WSController{base: newBase(log), hub: hub}
}

// Connect godoc
// @Summary  Subscribe to live notifications
// @Tags     notifications
// @Router   /ws [get]
func (ctrl *WSController) Connect(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	if err := ctrl.hub.HandleRequest(c.Writer, c.Request, actor.UserID); err != nil {
		ctrl.logger.WithFields(logger.Fields{"userId": actor.UserID}).Warn("websocket session: %v", err)
	}
}
