package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Remote backend the sync layer talks to.
	BackendBaseURL string
	GatewayTimeout time.Duration

	// Timeout applied to each optimistic mutation's remote call. A delete
	// that exceeds it is treated as possibly applied, not failed.
	MutationTimeout time.Duration

	// Path of the durable cache database.
	CacheDBPath string

	RateLimit string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BACKEND_BASE_URL", "")
	viper.SetDefault("GATEWAY_TIMEOUT", "30s")
	viper.SetDefault("MUTATION_TIMEOUT", "15s")
	viper.SetDefault("CACHE_DB_PATH", "cashbook_cache.db")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.BackendBaseURL = viper.GetString("BACKEND_BASE_URL")
	if cfg.BackendBaseURL == "" {
		log.Println("Warning: BACKEND_BASE_URL environment variable not set.")
	}

	gatewayTimeoutStr := viper.GetString("GATEWAY_TIMEOUT")
	gatewayTimeout, err := time.ParseDuration(gatewayTimeoutStr)
	if err != nil {
		gatewayTimeout = 30 * time.Second
		if gatewayTimeoutStr != "" {
			log.Printf("Warning: Invalid value for GATEWAY_TIMEOUT ('%s'). Defaulting to %s.\n", gatewayTimeoutStr, gatewayTimeout.String())
		}
	}
	cfg.GatewayTimeout = gatewayTimeout

	mutationTimeoutStr := viper.GetString("MUTATION_TIMEOUT")
	mutationTimeout, err := time.ParseDuration(mutationTimeoutStr)
	if err != nil {
		mutationTimeout = 15 * time.Second
		if mutationTimeoutStr != "" {
			log.Printf("Warning: Invalid value for MUTATION_TIMEOUT ('%s'). Defaulting to %s.\n", mutationTimeoutStr, mutationTimeout.String())
		}
	}
	cfg.MutationTimeout = mutationTimeout

	cfg.CacheDBPath = viper.GetString("CACHE_DB_PATH")
	if cfg.CacheDBPath == "" {
		cfg.CacheDBPath = "cashbook_cache.db"
		log.Printf("Warning: CACHE_DB_PATH not set. Defaulting to %s.\n", cfg.CacheDBPath)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
