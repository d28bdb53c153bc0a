package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings, loaded once at startup.
type Config struct {
	MongoURI      string
	Database      string
	JWTSecret     string
	Port          string
	Environment   string
	PostmarkToken string
	EmailSender   string
}

// Load reads configuration from the environment, consulting a .env file when
// one is present.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		MongoURI:      getEnv("DB_URL", "mongodb://localhost:27017"),
		Database:      getEnv("DB_NAME", "marketplace"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		Port:          getEnv("PORT", "5000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		PostmarkToken: getEnv("POSTMARK_API_TOKEN", ""),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
