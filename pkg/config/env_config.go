// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvWorldSize        = "CANVAS_WORLD_SIZE"
	EnvUpdateRate       = "CANVAS_UPDATE_RATE"
	EnvWorkers          = "CANVAS_WORKERS"
	EnvContacts         = "CANVAS_CONTACTS"
	EnvBroadPhase       = "CANVAS_BROADPHASE"
	EnvQuadTreeCapacity = "CANVAS_QUADTREE_CAPACITY"
	EnvRenderer         = "CANVAS_RENDERER"
	EnvRenderWidth      = "CANVAS_RENDER_WIDTH"
	EnvRenderHeight     = "CANVAS_RENDER_HEIGHT"
	EnvRenderScale      = "CANVAS_RENDER_SCALE"
	EnvRenderOutput     = "CANVAS_RENDER_OUTPUT"
	EnvTickInterval     = "CANVAS_TICK_INTERVAL"
)

// ApplyEnvironmentOverrides replaces config values with any CANVAS_*
// variables that are set, then validates the result. CANVAS_TICK_INTERVAL
// takes a duration such as "20ms" and wins over CANVAS_UPDATE_RATE.
func ApplyEnvironmentOverrides(config *Config) error {
	config.WorldSize = getEnvAsFloatOrDefault(EnvWorldSize, config.WorldSize)
	config.UpdateRate = getEnvAsIntOrDefault(EnvUpdateRate, config.UpdateRate)
	if interval := getEnvAsDurationOrDefault(EnvTickInterval, 0); interval > 0 {
		config.UpdateRate = int(time.Second / interval)
	}
	config.Workers = getEnvAsIntOrDefault(EnvWorkers, config.Workers)
	config.Contacts = getEnvAsBoolOrDefault(EnvContacts, config.Contacts)
	config.BroadPhase.Mode = strings.ToLower(getEnvOrDefault(EnvBroadPhase, config.BroadPhase.Mode))
	config.BroadPhase.Capacity = getEnvAsIntOrDefault(EnvQuadTreeCapacity, config.BroadPhase.Capacity)
	config.Debug.Renderer = strings.ToLower(getEnvOrDefault(EnvRenderer, config.Debug.Renderer))
	config.Debug.Width = getEnvAsIntOrDefault(EnvRenderWidth, config.Debug.Width)
	config.Debug.Height = getEnvAsIntOrDefault(EnvRenderHeight, config.Debug.Height)
	config.Debug.Scale = getEnvAsFloatOrDefault(EnvRenderScale, config.Debug.Scale)
	config.Debug.Output = getEnvOrDefault(EnvRenderOutput, config.Debug.Output)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// LoadConfigFromEnv returns DefaultConfig with environment overrides applied
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default if not set/invalid
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns environment variable as bool or default if not set/invalid
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns environment variable as float64 or default if not set/invalid
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns environment variable as duration or default if not set/invalid
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
