package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"script9/config"
	"script9/controllers"
	"script9/jobs"
	"script9/middleware"
	"script9/repository"
	"script9/routes"
	"script9/services"
	"script9/services/cache"
	"script9/services/logger"
	"script9/services/notification"
	"script9/services/upload"
	"script9/validator"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: cannot load .env, using the process environment: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.IsProduction()})

	db, err := config.ConnectDB(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	if cfg.DBAutoMigrate {
		if err := config.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
	}

	var ratingCache cache.Cache = cache.Noop{}
	rdb, err := config.ConnectRedis(cfg)
	switch {
	case err != nil:
		appLogger.Warn("redis unavailable, rating cache disabled: %v", err)
	case rdb != nil:
		ratingCache = cache.NewRedisCache(rdb)
	}

	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		appLogger.Warn("cloudinary unavailable, image uploads disabled: %v", err)
	}

	router, m, c := config.InitApp(cfg, appLogger)
	validator.Register()
	router.Use(middleware.Recovery(appLogger), middleware.RequestID(), middleware.RequestLogger(appLogger))

	notifier := notification.NewMelodyService(m)
	bookingRepo := repository.NewBookingRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)

	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Bookings:   bookingRepo,
		Properties: propertyRepo,
		Notifier:   notifier,
		Logger:     appLogger.WithFields(logger.Fields{"service": "booking"}),
	})
	messageService := services.NewMessageService(services.MessageServiceOptions{
		Conversations: repository.NewConversationRepository(db),
		Messages:      repository.NewMessageRepository(db),
		Bookings:      bookingRepo,
		Notifier:      notifier,
		Logger:        appLogger.WithFields(logger.Fields{"service": "message"}),
	})
	reviewService := services.NewReviewService(services.ReviewServiceOptions{
		Reviews:  repository.NewReviewRepository(db),
		Bookings: bookingRepo,
		Cache:    ratingCache,
		Logger:   appLogger.WithFields(logger.Fields{"service": "review"}),
	})
	propertyOpts := services.PropertyServiceOptions{
		Properties: propertyRepo,
		Ratings:    reviewService,
		Logger:     appLogger.WithFields(logger.Fields{"service": "property"}),
	}
	if cld != nil {
		propertyOpts.Uploader = upload.NewCloudinaryUploader(cld)
	}
	propertyService := services.NewPropertyService(propertyOpts)
	chatService, err := services.NewChatService(services.ChatServiceOptions{
		Webhooks: cfg.ChatWebhooks,
		Timeout:  cfg.ChatTimeout,
		History:  repository.NewChatHistoryRepository(db),
		Logger:   appLogger.WithFields(logger.Fields{"service": "chat"}),
	})
	if err != nil {
		log.Fatalf("Failed to initialize chat: %v", err)
	}
	paymentService := services.NewPaymentService(services.PaymentServiceOptions{
		SecretKey: cfg.StripeSecretKey,
		Logger:    appLogger.WithFields(logger.Fields{"service": "payment"}),
	})
	userService := services.NewUserService(services.UserServiceOptions{
		Users:  repository.NewUserRepository(db),
		Logger: appLogger,
	})

	if err := jobs.InitCronJobs(c, cfg.AutoCompleteSchedule, bookingService, appLogger.WithFields(logger.Fields{"job": "autocomplete"})); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	c.Start()
	defer c.Stop()

	routes.SetupRoutes(router, routes.Handlers{
		Auth: middleware.NewAuthenticator(middleware.AuthOptions{
			Secret:     []byte(cfg.JWTSecret),
			CookieName: cfg.SessionCookieName,
			Users:      userService,
			Logger:     appLogger,
		}),
		ChatLimiter:  middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Bookings:     controllers.NewBookingController(bookingService, appLogger),
		Conversation: controllers.NewConversationController(messageService, appLogger),
		Reviews:      controllers.NewReviewController(reviewService, appLogger),
		Properties:   controllers.NewPropertyController(propertyService, appLogger),
		Chat:         controllers.NewChatController(chatService, appLogger),
		Payments:     controllers.NewPaymentController(paymentService, appLogger),
		WS:           controllers.NewWSController(notifier, appLogger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = m.Close()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
