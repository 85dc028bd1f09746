package middleware

import (
	"script9/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware assigns a chat session id when the client did not send one.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(constants.HeaderSessionID)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(constants.ContextSessionIDKey, sessionID)
		c.Writer.Header().Set(constants.HeaderSessionID, sessionID)

		c.Next()
	}
}
