package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	API     APIConfig
	Token   TokenConfig
	Refresh RefreshConfig
	MockAPI MockAPIConfig
}

// APIConfig holds the dealership backend endpoint options.
type APIConfig struct {
	BaseURL string
}

// TokenConfig locates the durable bearer-token file on this device.
type TokenConfig struct {
	Path string
}

// RefreshConfig holds background collection-refresh settings.
type RefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// MockAPIConfig configures the local development backend.
type MockAPIConfig struct {
	Port          string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getenvWithDefault("BIKEDESK_API_URL", "http://localhost:8080"),
		},
		Token: TokenConfig{
			Path: getenvWithDefault("BIKEDESK_TOKEN_PATH", defaultTokenPath()),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("BIKEDESK_REFRESH_SCHEDULE", "*/5 * * * *"),
			Enabled:      getenvWithDefault("BIKEDESK_REFRESH_ENABLED", "true") == "true",
		},
		MockAPI: MockAPIConfig{
			Port:          getenvWithDefault("MOCKAPI_PORT", "8080"),
			JWTSecret:     getenvWithDefault("MOCKAPI_JWT_SECRET", "bikedesk-dev-secret"),
			AdminEmail:    getenvWithDefault("MOCKAPI_ADMIN_EMAIL", "admin@example.com"),
			AdminPassword: getenvWithDefault("MOCKAPI_ADMIN_PASSWORD", "admin123"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.API.BaseURL == "" {
		return errors.New("BIKEDESK_API_URL must be provided")
	}

	if c.Token.Path == "" {
		return errors.New("BIKEDESK_TOKEN_PATH must be provided")
	}

	if c.Refresh.Enabled && c.Refresh.CronSchedule == "" {
		return errors.New("BIKEDESK_REFRESH_SCHEDULE must be provided when refresh is enabled")
	}

	if c.MockAPI.Port == "" {
		return errors.New("MOCKAPI_PORT must not be empty")
	}

	if c.MockAPI.JWTSecret == "" {
		return errors.New("MOCKAPI_JWT_SECRET must not be empty")
	}

	return nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bikedesk", "token")
	}
	return filepath.Join(home, ".bikedesk", "token")
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
