package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string
	ServerPort     int
	PollInterval   time.Duration
	IconCDNBaseURL string

	// R2 settings are optional; icon mirroring stays disabled without them.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// IconMirrorEnabled reports whether every R2 field required for icon
// mirroring is set.
func (c *Config) IconMirrorEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	intervalStr := os.Getenv("POLL_INTERVAL_SECONDS")
	if intervalStr == "" {
		intervalStr = "10"
	}
	intervalSec, err := strconv.Atoi(intervalStr)
	if err != nil || intervalSec < 1 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be a positive integer, got %q", intervalStr)
	}

	iconBase := os.Getenv("ICON_CDN_BASE_URL")
	if iconBase == "" {
		iconBase = "https://cdn-old.brawlify.com"
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		ServerPort:        port,
		PollInterval:      time.Duration(intervalSec) * time.Second,
		IconCDNBaseURL:    iconBase,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}
