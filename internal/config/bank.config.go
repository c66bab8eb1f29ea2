package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr string
	RedisPass string

	JWTSecret  string
	SessionTTL time.Duration
}

func Load() *Config {
	return &Config{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		DBUser:     getEnv("DB_USER", "bank"),
		DBPassword: getEnv("DB_PASSWORD", "bank"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "bank"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:  getEnv("REDIS_PASS", ""),
		JWTSecret:  getEnv("JWT_SECRET", "dev-only-secret"),
		SessionTTL: getEnvDuration("SESSION_TTL", 12*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
