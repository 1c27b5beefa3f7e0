package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	apartmententity "rentorsale_backend/internal/feature/apartments/domain/entity"
	authentity "rentorsale_backend/internal/feature/auth/domain/entity"
	listingentity "rentorsale_backend/internal/feature/listings/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	RunMigrations bool
}

// OpenFunc opens a gorm session for the given DSN. It exists so that
// connection retries can be tested without a live server.
type OpenFunc func(dsn string) (*gorm.DB, error)

// BuildDSN assembles a PostgreSQL DSN from the config.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ConnectWithRetry keeps calling open until it succeeds or the timeout
// elapses. Failed attempts are retried every 3 seconds.
func ConnectWithRetry(dsn string, timeout time.Duration, open OpenFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// Open connects to PostgreSQL and runs migrations when configured.
func Open(cfg Config) (*gorm.DB, error) {
	open := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, open)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the schema for all entities.
// On PostgreSQL it also maintains the GIN index behind apartment search.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&apartmententity.Apartment{},
		&listingentity.Listing{},
		&listingentity.ListingImage{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_apartments_name_token ON apartments USING GIN (name_token)").Error; err != nil {
			return fmt.Errorf("failed to create search index: %w", err)
		}
	}
	return nil
}
