package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultEnvironment        = "development"
	defaultTimezone           = "America/Sao_Paulo"
	defaultCompletionInterval = time.Hour
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string
	// Storage selects the record store: "postgres" or "memory".
	Storage string
	// Location is the school's time zone; every "today" is computed in it.
	Location *time.Location
	// CompletionInterval is how often past bookings are marked completed.
	CompletionInterval time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		Storage:       strings.ToLower(os.Getenv("STORAGE")),
	}

	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}
	if cfg.Storage == "" {
		cfg.Storage = StoragePostgres
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required but not set")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE %q, want %q or %q", cfg.Storage, StoragePostgres, StorageMemory)
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.CompletionInterval = defaultCompletionInterval
	if raw := os.Getenv("COMPLETION_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse COMPLETION_INTERVAL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("COMPLETION_INTERVAL must be positive, got %s", d)
		}
		cfg.CompletionInterval = d
	}

	log.Printf("Config loaded: env=%s storage=%s timezone=%s\n", cfg.Environment, cfg.Storage, cfg.Location)

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
