package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Model credentials (process-wide defaults; requests may override)
	GeminiAPIKey string
	OpenAIAPIKey string

	// Rate limiting
	RateLimitRequests      int
	RateLimitWindowSeconds int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:           getEnvOrDefault("GEMINI_API_KEY", ""),
		OpenAIAPIKey:           getEnvOrDefault("OPENAI_API_KEY", ""),
		RateLimitRequests:      getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", 20),
		RateLimitWindowSeconds: getEnvAsIntOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		FrontendURL:            getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
