package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting, populated from environment variables.
type Config struct {
	DiscordToken string `envconfig:"DISCORD_BOT_TOKEN" required:"true"`

	// StoreBackend selects the document store implementation:
	// "gorm" (default), "redis", or "memory".
	StoreBackend string `envconfig:"STORE_BACKEND" default:"gorm"`

	// DatabaseURL is parsed with dburl; the scheme picks the gorm driver
	// (mysql://, sqlserver://, sqlite://, file:).
	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisURL    string `envconfig:"REDIS_URL" default:"localhost:6379"`

	// AccrualCron is a six-field cron spec for the presence tick.
	AccrualCron string `envconfig:"ACCRUAL_CRON" default:"0 * * * * *"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.StoreBackend == "gorm" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=gorm")
	}

	return &cfg, nil
}
