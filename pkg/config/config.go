package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Google Sheets
	ServiceAccountFile string
	SpreadsheetID      string

	// Scraper
	ScraperUserAgent      string
	ScraperTimeoutSeconds int

	// LLM (used by the agent CLI)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModelID string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		ServiceAccountFile:    getEnv("GOOGLE_SHEETS_SERVICE_ACCOUNT_FILE", ""),
		SpreadsheetID:         getEnv("GOOGLE_SHEETS_SHEET_ID", ""),
		ScraperUserAgent:      getEnv("SCRAPER_USER_AGENT", defaultUserAgent),
		ScraperTimeoutSeconds: getEnvInt("SCRAPER_TIMEOUT_SECONDS", 30),
		LLMBaseURL:            getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:             getEnv("LLM_API_KEY", ""),
		LLMModelID:            getEnv("LLM_MODEL_ID", "gpt-4o-mini"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.ScraperUserAgent == "" {
		return fmt.Errorf("SCRAPER_USER_AGENT must not be empty")
	}
	if c.ScraperTimeoutSeconds <= 0 {
		return fmt.Errorf("SCRAPER_TIMEOUT_SECONDS must be positive")
	}
	// Sheets credentials are optional at startup; the sheets tool reports a
	// configuration error in its envelope when they are missing.
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
