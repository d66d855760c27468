package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the callscreen service.
// Every key has a default so the server is runnable with zero configuration
// (demo mode: in-memory store, no broker, auth disabled).
type Config struct {
	ServerPort  int    `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Environment string `mapstructure:"ENVIRONMENT"`

	// PostgresDSN selects the storage backend at startup: when empty the
	// service runs in demo mode against the seeded in-memory store.
	PostgresDSN string `mapstructure:"POSTGRES_DSN"`

	// NATSUrl is optional; when empty no broker client is created.
	NATSUrl string `mapstructure:"NATS_URL"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
	AuthRequired   bool   `mapstructure:"AUTH_REQUIRED"`
	DemoUsername   string `mapstructure:"DEMO_USERNAME"`
	DemoPassword   string `mapstructure:"DEMO_PASSWORD"`

	// KeepaliveURL, when set, is polled on a fixed interval to defeat
	// idle shutdown on free hosting tiers.
	KeepaliveURL             string `mapstructure:"KEEPALIVE_URL"`
	KeepaliveIntervalMinutes int    `mapstructure:"KEEPALIVE_INTERVAL_MINUTES"`
}

// Load reads configuration from config.defaults.yaml (if present) and the
// environment. Environment variables use the APP_ prefix, e.g. APP_SERVER_PORT.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("SERVER_PORT", 3004)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("NATS_URL", "")

	v.SetDefault("JWT_SECRET", "demo-secret-must-be-overridden-in-prod")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("DEMO_USERNAME", "demo")
	v.SetDefault("DEMO_PASSWORD", "demo")

	v.SetDefault("KEEPALIVE_URL", "")
	v.SetDefault("KEEPALIVE_INTERVAL_MINUTES", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Configuration file not found for %s; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
