package routes

import (
	"net/http"

	"script9/controllers"
	"script9/docs"
	middlewares "script9/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles the controllers and guards the router needs.
type Handlers struct {
	Auth         *middlewares.Authenticator
	ChatLimiter  *middlewares.IPRateLimiter
	Bookings     *controllers.BookingController
	Conversation *controllers.ConversationController
	Reviews      *controllers.ReviewController
	Properties   *controllers.PropertyController
	Chat         *controllers.ChatController
	Payments     *controllers.PaymentController
	WS           *controllers.WSController
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	authRequired := h.Auth.Required()

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/ws", authRequired, h.WS.Connect)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	bookings := api.Group("/bookings")
	bookings.POST("/check-availability", h.Bookings.CheckAvailability)
	bookings.POST("/calculate-price", h.Bookings.CalculatePrice)
	bookings.Use(authRequired)
	bookings.GET("", h.Bookings.ListBookings)
	bookings.POST("", h.Bookings.CreateBooking)
	bookings.GET("/upcoming", h.Bookings.Upcoming)
	bookings.GET("/stats", h.Bookings.Stats)
	bookings.GET("/:id", h.Bookings.GetBooking)
	bookings.PATCH("/:id/status", h.Bookings.UpdateStatus)
	bookings.POST("/:id/confirm", h.Bookings.Confirm)
	bookings.POST("/:id/cancel", h.Bookings.Cancel)

	conversations := api.Group("/conversations", authRequired)
	conversations.GET("", h.Conversation.ListConversations)
	conversations.POST("", h.Conversation.CreateConversation)
	conversations.GET("/unread-count", h.Conversation.UnreadCount)
	conversations.GET("/:id/messages", h.Conversation.ListMessages)
	conversations.POST("/:id/messages", h.Conversation.SendMessage)
	conversations.POST("/:id/read", h.Conversation.MarkRead)

	reviews := api.Group("/reviews", authRequired)
	reviews.POST("", h.Reviews.CreateReview)
	reviews.PATCH("/:id", h.Reviews.UpdateReview)
	reviews.POST("/:id/response", h.Reviews.Respond)
	reviews.DELETE("/:id", h.Reviews.DeleteReview)

	properties := api.Group("/properties")
	properties.GET("", h.Properties.ListProperties)
	properties.GET("/:id", h.Properties.GetProperty)
	properties.GET("/:id/reviews", h.Reviews.ListPropertyReviews)
	properties.GET("/:id/rating", h.Reviews.PropertyRating)
	properties.POST("", authRequired, h.Properties.CreateProperty)
	properties.PATCH("/:id", authRequired, h.Properties.UpdateProperty)
	properties.POST("/:id/images", authRequired, h.Properties.UploadImage)

	api.POST("/chat/:widget", h.ChatLimiter.Middleware(), middlewares.SessionMiddleware(), h.Auth.Optional(), h.Chat.Send)

	api.GET("/payments/sessions/:id", authRequired, h.Payments.GetSession)
}
