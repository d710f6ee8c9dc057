package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	TelegramToken      string
	OpenAIKey          string
	DatabaseURL        string
	OpenAIBaseURL      string
	TranscriptionModel string
	TagsFile           string
	HealthAddr         string
	BotDebugMode       bool
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		TranscriptionModel: getEnv("TRANSCRIPTION_MODEL", "whisper-1"),
		TagsFile:           getEnv("TAGS_FILE", ""),
		HealthAddr:         getEnvAllowEmpty("HEALTH_ADDR", ":8081"),
		BotDebugMode:       getEnvBool("BOT_DEBUG_MODE", false),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for voice transcription")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty falls back to the default only when the variable is
// unset. An explicitly empty value stays empty, which is how the health
// server is disabled.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
