// Package config loads the service configuration from environment variables.
// Components never read the environment themselves; main loads a Config once
// and injects the relevant sections.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rentorsale_backend/internal/platform/db"
	"rentorsale_backend/internal/platform/redis"
	"rentorsale_backend/internal/platform/storage"
	"rentorsale_backend/internal/platform/token"
)

const (
	// DefaultTokenExpiryMinutes is used when ACCESS_TOKEN_EXPIRE_MINUTES is unset or invalid.
	DefaultTokenExpiryMinutes = 1440
)

// Config aggregates every configurable section of the service.
type Config struct {
	Port        string
	CORSOrigins []string

	DB      db.Config
	Redis   redis.Config
	Token   token.Config
	Storage storage.Config

	// MailFrom is the sender address for OTP mails.
	MailFrom string
	// WebhookURL receives plain-text notifications for new listings.
	// Notifications are disabled when empty.
	WebhookURL string
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		CORSOrigins: splitOrigins(os.Getenv("CORS_ORIGIN_SERVER")),
		DB: db.Config{
			Host:          os.Getenv("DB_HOST"),
			Port:          getenv("DB_PORT", "5432"),
			User:          os.Getenv("DB_USER"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          os.Getenv("DB_NAME"),
			SSLMode:       getenv("DB_SSLMODE", "disable"),
			RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		},
		Redis: redis.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Token: token.Config{
			Secret: os.Getenv("SECRET_KEY"),
			Expiry: time.Duration(expiryMinutes()) * time.Minute,
		},
		Storage: storage.Config{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getenv("MINIO_BUCKET", "listing-images"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
		MailFrom:   getenv("MAIL_FROM", "rentorsale.apartments@gmail.com"),
		WebhookURL: os.Getenv("LISTING_WEBHOOK_URL"),
	}
}

// getenv returns the value of the environment variable or a fallback when unset.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// expiryMinutes parses ACCESS_TOKEN_EXPIRE_MINUTES, falling back to the default.
func expiryMinutes() int {
	v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")
	if v == "" {
		return DefaultTokenExpiryMinutes
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultTokenExpiryMinutes
	}
	return n
}

// splitOrigins splits a comma separated origin list, trimming whitespace.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
