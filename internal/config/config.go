package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBUrl         string
	JWTSecret     string
	AppEnv        string
	AIGatewayURL  string
	AIGatewayKey  string
	ElevenLabsKey string
	ImageAPIURL   string
	ImageAPIKey   string
	TTSBackend    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         getEnv("DB_URL", ""),
		JWTSecret:     jwtSecret,
		AppEnv:        normalizeEnv(getEnv("APP_ENV", "production")),
		AIGatewayURL:  getEnv("AI_GATEWAY_URL", ""),
		AIGatewayKey:  getEnv("AI_GATEWAY_KEY", ""),
		ElevenLabsKey: getEnv("ELEVEN_LABS_API_KEY", ""),
		ImageAPIURL:   getEnv("IMAGE_API_URL", ""),
		ImageAPIKey:   getEnv("IMAGE_API_KEY", ""),
		TTSBackend:    normalizeTTSBackend(getEnv("TTS_BACKEND", "remote")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// normalizeTTSBackend maps the env value onto the two supported narration
// backends. Anything unrecognized falls back to the remote synthesizer.
func normalizeTTSBackend(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "local", "offline", "espeak":
		return "local"
	default:
		return "remote"
	}
}
