package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

type Config struct {
	AppPort      string
	LogLevel     string
	BodyLimitMB  int
	ItemsPerPage int
	Storage      StorageConfig
	Auth         AuthConfig
	RabbitMQ     RabbitMQConfig
}

type StorageConfig struct {
	Driver      string
	DSN         string
	SnapshotKey string
	LogLevel    string
}

type AuthConfig struct {
	JWTSecret string
	// AdminPasswordHash is a bcrypt hash. Empty accepts any well-formed credentials.
	AdminPasswordHash string
	TokenTTLHours     int
}

type RabbitMQConfig struct {
	// URL empty disables catalog event publishing.
	URL   string
	Queue string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BODY_LIMIT_MB", 16)
	v.SetDefault("ITEMS_PER_PAGE", 8)
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("STORAGE_DSN", "parfum.db")
	v.SetDefault("SNAPSHOT_KEY", "perfume_admin_products")
	v.SetDefault("STORAGE_LOG_LEVEL", "silent")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "catalog_events")
}

// Load reads configuration from the environment and, when CONFIG_FILE is set,
// from that file. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		BodyLimitMB:  v.GetInt("BODY_LIMIT_MB"),
		ItemsPerPage: v.GetInt("ITEMS_PER_PAGE"),
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			DSN:         v.GetString("STORAGE_DSN"),
			SnapshotKey: v.GetString("SNAPSHOT_KEY"),
			LogLevel:    v.GetString("STORAGE_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
			TokenTTLHours:     v.GetInt("TOKEN_TTL_HOURS"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverNone:
	case DriverSQLite, DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("STORAGE_DSN is required for driver %s", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.ItemsPerPage < 1 {
		return fmt.Errorf("ITEMS_PER_PAGE must be positive, got %d", c.ItemsPerPage)
	}
	if c.BodyLimitMB < 1 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", c.BodyLimitMB)
	}
	return nil
}
