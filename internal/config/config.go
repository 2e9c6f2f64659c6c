package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	RedisURL      string
	RedisPassword string
	MoveCacheTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string

	AIMoveDelay    time.Duration
	MaxSearchDepth int
	MatchRetention time.Duration

	LogLevel  string
	LogPretty bool
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	allowedOrigins = append(allowedOrigins, GetEnvAsList("ALLOWED_ORIGINS")...)

	// Optional collaborators; empty values switch them off
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	moveCacheTTLSec := GetEnvAsInt("MOVE_CACHE_TTL_SECONDS", 600)
	kafkaBrokers := GetEnvAsList("KAFKA_BROKERS")
	kafkaTopic := GetEnv("KAFKA_TOPIC", "connect4-engine")

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "")

	// Engine
	aiMoveDelayMs := GetEnvAsInt("AI_MOVE_DELAY_MS", 350)
	maxSearchDepth := GetEnvAsInt("MAX_SEARCH_DEPTH", 6)
	matchRetentionMin := GetEnvAsInt("MATCH_RETENTION_MINUTES", 30)

	return &Config{
		Port:           port,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,
		RedisURL:       redisURL,
		RedisPassword:  redisPassword,
		MoveCacheTTL:   time.Duration(moveCacheTTLSec) * time.Second,
		KafkaBrokers:   kafkaBrokers,
		KafkaTopic:     kafkaTopic,
		JWTSecret:      jwtSecret,
		AIMoveDelay:    time.Duration(aiMoveDelayMs) * time.Millisecond,
		MaxSearchDepth: maxSearchDepth,
		MatchRetention: time.Duration(matchRetentionMin) * time.Minute,
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogPretty:      GetEnvAsBool("LOG_PRETTY", false),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("component", "config").Str("key", key).Str("value", valueStr).
			Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("component", "config").Str("key", key).Str("value", valueStr).
			Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated variable, dropping blank entries.
func GetEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
