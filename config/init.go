package config

import (
	"time"

	"script9/constants"
	"script9/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp builds the router, websocket hub and scheduler.
func InitApp(cfg *Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", constants.HeaderRequestID, constants.HeaderSessionID)
	configCors.AddExposeHeaders(constants.HeaderRequestID, constants.HeaderSessionID)
	configCors.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	configCors.AllowCredentials = true
	configCors.MaxAge = 12 * time.Hour
	if len(cfg.CORSAllowedOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Warn("set trusted proxies: %v", err)
	}

	m := melody.New()
	c := cron.New()
	return router, m, c
}
