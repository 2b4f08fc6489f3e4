package infra

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort    = ":8080"
	defaultLookupTimeout = 15 * time.Second
	defaultSessionTTL    = 2 * time.Hour
)

type Config struct {
	ServerName      string
	ServerPort      string
	Environment     string
	SignatureToken  string
	RedisUrl        string
	PlacaFipeAPIKey string
	PlacaFipeURL    string
	LookupBaseURL   string
	LookupTimeout   time.Duration
	SessionTTL      time.Duration
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			panic("Error loading env file")
		}
	}

	port := getEnv("SERVER_PORT", defaultServerPort)
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	return Config{
		ServerName:      os.Getenv("SERVER_NAME"),
		ServerPort:      port,
		Environment:     os.Getenv("ENVIRONMENT"),
		SignatureToken:  os.Getenv("SIGNATURE_STRING"),
		RedisUrl:        os.Getenv("REDIS_URL"),
		PlacaFipeAPIKey: os.Getenv("PLACA_FIPE_API_KEY"),
		PlacaFipeURL:    os.Getenv("PLACA_FIPE_URL"),
		LookupBaseURL:   getEnv("LOOKUP_BASE_URL", "http://localhost"+port),
		LookupTimeout:   getDuration("LOOKUP_TIMEOUT", defaultLookupTimeout),
		SessionTTL:      getDuration("SESSION_TTL", defaultSessionTTL),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[CONFIG] %s inválido (%q), usando %v", key, value, fallback)
		return fallback
	}
	return d
}
