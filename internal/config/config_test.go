package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "KAFKA_BROKERS", "JWT_SECRET", "AI_MOVE_DELAY_MS", "MAX_SEARCH_DEPTH"} {
		t.Setenv(key, "")
	}
	t.Setenv("FRONTEND_URL", "http://example.test")

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("port %q", cfg.Port)
	}
	if cfg.AIMoveDelay != 350*time.Millisecond {
		t.Errorf("move delay %v", cfg.AIMoveDelay)
	}
	if cfg.MaxSearchDepth != 6 {
		t.Errorf("max depth %d", cfg.MaxSearchDepth)
	}
	if cfg.KafkaBrokers != nil || cfg.JWTSecret != "" {
		t.Errorf("optional collaborators enabled by default: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://example.test"}) {
		t.Errorf("origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigReturnsFreshValue(t *testing.T) {
	t.Setenv("PORT", "9000")

	first := LoadConfig()
	first.Port = "1"
	first.AllowedOrigins[0] = "mutated"

	second := LoadConfig()
	if second == first || second.Port != "9000" || second.AllowedOrigins[0] == "mutated" {
		t.Errorf("LoadConfig shared state between calls: %+v", second)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("AI_MOVE_DELAY_MS", "0")
	t.Setenv("MAX_SEARCH_DEPTH", "not-a-number")
	t.Setenv("LOG_PRETTY", "true")

	cfg := LoadConfig()
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[2] != "https://b.test" {
		t.Errorf("origins %v", cfg.AllowedOrigins)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Errorf("brokers %v", cfg.KafkaBrokers)
	}
	if cfg.AIMoveDelay != 0 {
		t.Errorf("move delay %v", cfg.AIMoveDelay)
	}
	if cfg.MaxSearchDepth != 6 {
		t.Errorf("bad integer should fall back to default, got %d", cfg.MaxSearchDepth)
	}
	if !cfg.LogPretty {
		t.Errorf("LOG_PRETTY ignored")
	}
}

func TestSetupLoggingLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetupLogging("debug", false)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level %v", zerolog.GlobalLevel())
	}
	SetupLogging("nonsense", false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", zerolog.GlobalLevel())
	}
}
