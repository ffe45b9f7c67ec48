package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret        string
	TokenExpiryHours int

	// Governance settings
	MaxNoShowCount           int
	PenaltyDurationDays      int
	PortfolioGenerationLimit int
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "projectmate"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:        getEnv("JWT_SECRET", "change-me-in-production"),
		TokenExpiryHours: getEnvInt("TOKEN_EXPIRY_HOURS", 24),

		MaxNoShowCount:           getEnvInt("MAX_NO_SHOW_COUNT", 3),
		PenaltyDurationDays:      getEnvInt("PENALTY_DURATION_DAYS", 30),
		PortfolioGenerationLimit: getEnvInt("PORTFOLIO_GENERATION_LIMIT", 3),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
