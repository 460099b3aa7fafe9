package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	DatabaseURL     string
	JWTSecret       string
	TokenExpiration time.Duration

	// Provider credentials. An empty key silently disables that provider's
	// entries in the fallback chain rather than failing startup.
	GroqAPIKey   string
	GeminiAPIKey string

	// Free-tier usage quota (rolling windows).
	DailyLimit   int
	MonthlyLimit int

	// Rate limiting. RateLimitWindow/RateLimitMax cover general API
	// traffic; AIRateLimitMax is the stricter budget for AI endpoints.
	RateLimitWindow time.Duration
	RateLimitMax    int
	AIRateLimitMax  int
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpHours := getEnvInt("JWT_EXPIRATION_HOURS", 168) // 7 days

	groqKey := getEnv("GROQ_API_KEY", "")
	if groqKey == "" {
		log.Println("Warning: GROQ_API_KEY is not set. Groq models will be unavailable.")
	}
	geminiKey := getEnv("GOOGLE_AI_API_KEY", "")
	if geminiKey == "" {
		log.Println("Warning: GOOGLE_AI_API_KEY is not set. Gemini models will be unavailable.")
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "5000"),
		DatabaseURL:     dbURL,
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenExpiration: time.Hour * time.Duration(tokenExpHours),
		GroqAPIKey:      groqKey,
		GeminiAPIKey:    geminiKey,
		DailyLimit:      getEnvInt("FREE_TIER_DAILY_LIMIT", 50),
		MonthlyLimit:    getEnvInt("FREE_TIER_MONTHLY_LIMIT", 1000),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
		AIRateLimitMax:  getEnvInt("AI_RATE_LIMIT_MAX_REQUESTS", 20),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, DailyLimit=%d, MonthlyLimit=%d",
		cfg.HTTPPort, cfg.TokenExpiration, cfg.DailyLimit, cfg.MonthlyLimit)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable or returns a default value.
func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, value, fallback, err)
		return fallback
	}
	return n
}
