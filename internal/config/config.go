// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds the service settings.
type Config struct {
	Env           string
	Port          string
	StorageDriver string
	DatabaseDSN   string
	RedisURL      string
	RabbitMQURL   string // empty disables catalog events
	APILatency    time.Duration
	CatalogSize   int
	CatalogSeed   uint64
	ReviewCount   int
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool {
	return c.Env == "development"
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			zap.L().Debug("No env file loaded", zap.String("file", f), zap.Error(err))
		}
	}
}

// Load reads the configuration from v, falling back to defaults.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_DSN", "techmart.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("API_LATENCY", "300ms")
	v.SetDefault("CATALOG_SIZE", 50)
	v.SetDefault("CATALOG_SEED", 0)
	v.SetDefault("REVIEW_COUNT", 200)
	v.AutomaticEnv()

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("APP_PORT"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		RedisURL:      v.GetString("REDIS_URL"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		APILatency:    v.GetDuration("API_LATENCY"),
		CatalogSize:   v.GetInt("CATALOG_SIZE"),
		CatalogSeed:   v.GetUint64("CATALOG_SEED"),
		ReviewCount:   v.GetInt("REVIEW_COUNT"),
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if (c.StorageDriver == DriverSQLite || c.StorageDriver == DriverPostgres) && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for the %s driver", c.StorageDriver)
	}
	if c.APILatency < 0 {
		return fmt.Errorf("API_LATENCY must not be negative")
	}
	if c.CatalogSize < 1 {
		return fmt.Errorf("CATALOG_SIZE must be positive")
	}
	if c.ReviewCount < 0 {
		return fmt.Errorf("REVIEW_COUNT must not be negative")
	}
	return nil
}
