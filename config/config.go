package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/altai-travel/booking/logger"
)

// LoadEnv loads variables from a .env file when present. Deployed environments
// provide real environment variables, so a missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.InfoLogger.Info("No .env file found, relying on environment variables")
	}
}

// GetEnv returns the value of key or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
