package database

import (
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sevasetu/seva-backend/internal/config"
)

var DB *gorm.DB

// Connect opens the Postgres connection with exponential-backoff retries, so
// the service survives the database coming up after it in compose setups.
func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 15 * time.Second

	ticker := backoff.NewTicker(b)
	defer ticker.Stop()

	deadline := time.Now().Add(2 * time.Minute)

	log.Println("📦 Connecting to PostgreSQL database...")

	var lastErr error
	for range ticker.C {
		if time.Now().After(deadline) {
			break
		}

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			DB = db
			log.Println("✅ Database connected successfully!")
			return nil
		}

		log.Printf("⚠️  Failed to connect to database, will retry: %v", err)
		lastErr = err
	}

	return fmt.Errorf("failed to connect to database after all attempts: %w", lastErr)
}
