// Package config loads runtime settings from STUDIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all runtime settings. Engine constants (history depth, zoom
// bounds, recognition thresholds) are fixed behaviour, not configuration.
type Config struct {
	// ShareAddr is the listen address of the LAN share server.
	ShareAddr    string `validate:"required"`
	ShareEnabled bool
	MDNSEnabled  bool
	LogLevel     string `validate:"oneof=debug info warn error"`
	WindowWidth  int    `validate:"gte=320"`
	WindowHeight int    `validate:"gte=240"`
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		ShareAddr:    getEnv("STUDIO_SHARE_ADDR", ":8787"),
		ShareEnabled: getEnvBool("STUDIO_SHARE", true),
		MDNSEnabled:  getEnvBool("STUDIO_MDNS", true),
		LogLevel:     getEnv("STUDIO_LOG_LEVEL", "info"),
		WindowWidth:  getEnvInt("STUDIO_WINDOW_WIDTH", 1280),
		WindowHeight: getEnvInt("STUDIO_WINDOW_HEIGHT", 800),
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
