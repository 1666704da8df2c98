package Config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs, loaded once at startup.
// All provider credentials come from the environment; there is no config file.
type Config struct {
	Port        string
	FrontendURL string
	FrontendDir string
	LogLevel    string
	LogFormat   string

	GeminiAPIKey string
	GeminiModel  string

	FirebaseProjectID    string
	FirebasePrivateKeyID string
	FirebasePrivateKey   string
	FirebaseClientEmail  string
	FirebaseClientID     string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RetentionDays int
}

// Load reads the environment (plus an optional .env file) and fails when any
// required credential is missing, so a misconfigured process never reaches
// its first request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		FrontendDir: getEnv("FRONTEND_DIR", "./frontend"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		FirebaseProjectID:    os.Getenv("FIREBASE_PROJECT_ID"),
		FirebasePrivateKeyID: os.Getenv("FIREBASE_PRIVATE_KEY_ID"),
		FirebasePrivateKey:   os.Getenv("FIREBASE_PRIVATE_KEY"),
		FirebaseClientEmail:  os.Getenv("FIREBASE_CLIENT_EMAIL"),
		FirebaseClientID:     os.Getenv("FIREBASE_CLIENT_ID"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "halo"),
		DBPort:     getEnv("DB_PORT", "5432"),
	}

	days, err := strconv.Atoi(getEnv("RETENTION_DAYS", "90"))
	if err != nil || days <= 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must be a positive integer")
	}
	cfg.RetentionDays = days

	var missing []string
	for name, value := range map[string]string{
		"GEMINI_API_KEY":        cfg.GeminiAPIKey,
		"FIREBASE_PROJECT_ID":   cfg.FirebaseProjectID,
		"FIREBASE_PRIVATE_KEY":  cfg.FirebasePrivateKey,
		"FIREBASE_CLIENT_EMAIL": cfg.FirebaseClientEmail,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
