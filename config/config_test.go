package config

import (
	"testing"
	"time"

	"script9/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "DATABASE_URL", "DB_HOST", "DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_SSLMODE",
		"DB_AUTO_MIGRATE", "REDIS_ADDR", "REDIS_DB", "CHAT_WEBHOOKS", "CHAT_WEBHOOK_URL", "CHAT_TIMEOUT",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "SESSION_COOKIE_NAME",
		"BOOKING_AUTOCOMPLETE_SCHEDULE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://app@localhost/script9")
}

func TestLoadDefaults(t *testing.T) {
	baseEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8083", cfg.Port)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, "script9_session", cfg.SessionCookieName)
	assert.Equal(t, 30*time.Second, cfg.ChatTimeout)
	assert.Equal(t, "0 * * * *", cfg.AutoCompleteSchedule)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Empty(t, cfg.ChatWebhooks)
}

func TestLoadChatWebhooks(t *testing.T) {
	baseEnv(t)
	t.Setenv("CHAT_WEBHOOKS", "sales=https://hooks.example.com/sales, support=https://hooks.example.com/support,broken")
	t.Setenv("CHAT_WEBHOOK_URL", "https://hooks.example.com/default")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sales":   "https://hooks.example.com/sales",
		"support": "https://hooks.example.com/support",
		"default": "https://hooks.example.com/default",
	}, cfg.ChatWebhooks)
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	baseEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "script9")
	t.Setenv("DB_SSLMODE", "disable")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "host=db user=app password= dbname=script9 port=5432 sslmode=disable TimeZone=UTC", cfg.DatabaseURL)
}

func TestLoadValidation(t *testing.T) {
	baseEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CHAT_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-1")
	t.Setenv("ENV", "prod")

	_, err := Load()

	require.Error(t, err)
	for _, want := range []string{"AUTH_JWT_SECRET", "DB_HOST", "CHAT_TIMEOUT", "RATE_LIMIT_RPS", "CORS_ALLOWED_ORIGINS"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestOptionalClientsWhenUnset(t *testing.T) {
	cfg := &Config{}

	rdb, err := ConnectRedis(cfg)
	assert.NoError(t, err)
	assert.Nil(t, rdb)

	cld, err := ConnectCloudinary(cfg)
	assert.NoError(t, err)
	assert.Nil(t, cld)
}

func TestInitAppRestrictsOrigins(t *testing.T) {
	router, hub, scheduler := InitApp(&Config{CORSAllowedOrigins: []string{"https://script9.example"}}, logger.NewNop())

	assert.NotNil(t, router)
	assert.NotNil(t, hub)
	assert.NotNil(t, scheduler)
}
