package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"script9/constants"
	"script9/utils"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	Env  string
	Port string

	DatabaseURL   string
	DBAutoMigrate bool

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	JWTSecret          string
	SessionCookieName  string
	CORSAllowedOrigins []string

	ChatWebhooks map[string]string
	ChatTimeout  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	StripeSecretKey string
	CloudinaryURL   string

	AutoCompleteSchedule string
	LogLevel             string
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// LoadEnv loads .env into the process environment. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                  getEnv("ENV", "dev"),
		Port:                 getEnv("PORT", "8083"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisUser:            getEnv("REDIS_USER", ""),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", constants.DefaultSessionCookie),
		CORSAllowedOrigins:   utils.SplitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		CloudinaryURL:        os.Getenv("CLOUDINARY_URL"),
		AutoCompleteSchedule: getEnv("BOOKING_AUTOCOMPLETE_SCHEDULE", "0 * * * *"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		dsn, err := dsnFromParts()
		if err != nil {
			errs = append(errs, err)
		}
		cfg.DatabaseURL = dsn
	}

	var err error
	if cfg.DBAutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true")); err != nil {
		errs = append(errs, fmt.Errorf("DB_AUTO_MIGRATE: %w", err))
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
	}
	if cfg.ChatTimeout, err = time.ParseDuration(getEnv("CHAT_TIMEOUT", "30s")); err != nil {
		errs = append(errs, fmt.Errorf("CHAT_TIMEOUT: %w", err))
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be a positive number"))
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5")); err != nil || cfg.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer"))
	}

	cfg.ChatWebhooks = utils.ParseKeyValueList(os.Getenv("CHAT_WEBHOOKS"))
	if url := getEnv("CHAT_WEBHOOK_URL", ""); url != "" {
		if _, ok := cfg.ChatWebhooks[constants.ChatDefaultWidget]; !ok {
			cfg.ChatWebhooks[constants.ChatDefaultWidget] = url
		}
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if cfg.IsProduction() && len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS is required in production"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func dsnFromParts() (string, error) {
	host := getEnv("DB_HOST", "")
	user := getEnv("DB_USER", "")
	name := getEnv("DB_NAME", "")
	if host == "" || user == "" || name == "" {
		return "", errors.New("DATABASE_URL or DB_HOST, DB_USER and DB_NAME are required")
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, os.Getenv("DB_PASSWORD"), name, getEnv("DB_PORT", "5432"), getEnv("DB_SSLMODE", "require")), nil
}
