package constants

import "time"

// Cache keys and lifetimes
const (
	RatingCacheKeyPrefix = "rating:property:"
	RatingCacheTTL       = 10 * time.Minute
)

// Notification event types pushed over the websocket
const (
	EventMessageCreated       = "message.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Chat limits
const (
	ChatMaxContentLength = 4000
	ChatDefaultWidget    = "default"
)

// Gin context keys
const (
	ContextActorKey     = "actor"
	ContextRequestIDKey = "requestId"
	ContextSessionIDKey = "sessionId"
)

// Request headers and cookies
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderSessionID      = "X-Session-ID"
	DefaultSessionCookie = "script9_session"
)

// ConversationPreviewLength mirrors the preview cut applied by the messages trigger.
const ConversationPreviewLength = 100

func RatingCacheKey(propertyID string) string {
	return RatingCacheKeyPrefix + propertyID
}
