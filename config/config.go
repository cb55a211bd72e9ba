package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Ishan007-bot/Sports-Arena-Backend/storage"
	"github.com/joho/godotenv"
)

const (
	defaultServerPort = 8080
	defaultClientURL  = "http://localhost:3000"
)

// Config holds every setting the server and the admin tool read from the
// environment.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// ClientURLs are the origins allowed by CORS and the websocket upgrader.
	ClientURLs []string

	// RedisURL enables cross-instance event fan-out when set.
	RedisURL string

	R2 storage.R2Config

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := parsePort(os.Getenv("SERVER_PORT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		ServerPort:   port,
		ClientURLs:   splitOrigins(getEnv("CLIENT_URL", defaultClientURL)),
		RedisURL:     os.Getenv("REDIS_URL"),
		R2: storage.R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@sportsarena.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	return cfg, nil
}

func parsePort(raw string) (int, error) {
	if raw == "" {
		return defaultServerPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	return port, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitOrigins accepts a comma separated list so several front ends can share
// one backend.
func splitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
