package config

import (
	"fmt"
	"time"

	"script9/models"
	"script9/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// storeGuards are the constraints and triggers the services rely on.
var storeGuards = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (property_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
				WHERE (status IN ('pending', 'confirmed'));
		END IF;
	END $$`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_valid_range') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_valid_range CHECK (start_time < end_time);
		END IF;
	END $$`,
	`CREATE OR REPLACE FUNCTION messages_after_insert() RETURNS trigger AS $$
	BEGIN
		UPDATE conversations SET
			last_message_at = NEW.created_at,
			last_message_preview = LEFT(NEW.message_text, 100),
			guest_unread_count = guest_unread_count + CASE WHEN NEW.sender_id = host_id THEN 1 ELSE 0 END,
			host_unread_count = host_unread_count + CASE WHEN NEW.sender_id = guest_id THEN 1 ELSE 0 END
		WHERE id = NEW.conversation_id;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS messages_after_insert ON messages`,
	`CREATE TRIGGER messages_after_insert AFTER INSERT ON messages
		FOR EACH ROW EXECUTE FUNCTION messages_after_insert()`,
}

// ConnectDB opens the Postgres pool. Driver errors are translated so
// duplicate keys surface as gorm.ErrDuplicatedKey.
func ConnectDB(cfg *Config, log logger.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connected to db")
	return db, nil
}

// Migrate creates the tables and installs the store guards.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Booking{},
		&models.Conversation{},
		&models.Message{},
		&models.Review{},
		&models.ChatHistory{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range storeGuards {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install store guard: %w", err)
		}
	}
	return nil
}
