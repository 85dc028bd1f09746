// Package controllers adapts HTTP requests to service calls.
package controllers

import (
	"script9/access"
	apperrors "script9/errors"
	"script9/middleware"
	"script9/response"
	"script9/services/logger"
	"script9/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type base struct {
	logger logger.Logger
}

func newBase(log logger.Logger) base {
	if log == nil {
		log = logger.NewNop()
	}
	return base{logger: log}
}

func (b base) fail(c *gin.Context, err error) {
	response.HandleError(c, b.logger, err)
}

// actor writes a 401 and returns false when the request is anonymous.
func (b base) actor(c *gin.Context) (access.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, apperrors.ErrCodeMissingToken, "authentication required")
		return access.Actor{}, false
	}
	return actor, true
}

// pathID returns the :id route parameter, writing a 400 when it is not a canonical UUID.
func (b base) pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		b.fail(c, apperrors.BadRequest(apperrors.ErrCodeInvalidFormat, "id must be a UUID"))
		return "", false
	}
	return id, true
}

func (b base) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		b.fail(c, validator.BindError(err))
		return false
	}
	return true
}

func (b base) bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		b.fail(c, validator.BindError(err))
		return false
	}
	return true
}
