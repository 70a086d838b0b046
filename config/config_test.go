package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "TRANSCRIPT_LANGUAGES", "TRANSCRIPT_TIMEOUT", "GENAI_PROVIDER",
		"GENAI_MODEL", "KAFKA_BOOTSTRAP_SERVERS", "EXPOSE_ERROR_DETAIL", "SQLITE_PATH", "DEDUP_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != DefaultPort {
		t.Fatalf("Port = %q; want %q", cfg.Port, DefaultPort)
	}
	if want := []string{"es", "en"}; !reflect.DeepEqual(cfg.TranscriptLanguages, want) {
		t.Fatalf("TranscriptLanguages = %v; want %v", cfg.TranscriptLanguages, want)
	}
	if cfg.GenAIProvider != ProviderGemini || cfg.GenAIModel != DefaultGeminiModel {
		t.Fatalf("provider/model = %s/%s", cfg.GenAIProvider, cfg.GenAIModel)
	}
	if cfg.TranscriptTimeout != DefaultTranscriptTimeout {
		t.Fatalf("TranscriptTimeout = %v", cfg.TranscriptTimeout)
	}
	if cfg.KafkaEnabled() {
		t.Fatalf("Kafka should be disabled without brokers")
	}
	if cfg.ExposeErrorDetail {
		t.Fatalf("ExposeErrorDetail should default to false")
	}
	if cfg.DedupTTL != DefaultDedupTTL || cfg.DedupKeyPrefix != DefaultDedupKeyPrefix {
		t.Fatalf("dedup = %s/%q", cfg.DedupTTL, cfg.DedupKeyPrefix)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRANSCRIPT_LANGUAGES", " en , es ,")
	t.Setenv("GENERATION_TIMEOUT", "45")
	t.Setenv("TRANSCRIPT_TIMEOUT", "1m")
	t.Setenv("GENAI_PROVIDER", "Cohere")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "k1:9092,k2:9092")
	t.Setenv("EXPOSE_ERROR_DETAIL", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	if cfg.Addr() != ":9090" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
	if want := []string{"en", "es"}; !reflect.DeepEqual(cfg.TranscriptLanguages, want) {
		t.Fatalf("TranscriptLanguages = %v; want %v", cfg.TranscriptLanguages, want)
	}
	if cfg.GenerationTimeout != 45*time.Second {
		t.Fatalf("GenerationTimeout = %v", cfg.GenerationTimeout)
	}
	if cfg.TranscriptTimeout != time.Minute {
		t.Fatalf("TranscriptTimeout = %v", cfg.TranscriptTimeout)
	}
	if cfg.GenAIProvider != ProviderCohere {
		t.Fatalf("GenAIProvider = %q", cfg.GenAIProvider)
	}
	if !cfg.KafkaEnabled() || len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if !cfg.ExposeErrorDetail {
		t.Fatalf("ExposeErrorDetail should be true")
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", cfg.RedisDB)
	}
}

func TestGetEnvDurationRejectsGarbage(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	if got := getEnvDuration("SOME_TIMEOUT", 5*time.Second); got != 5*time.Second {
		t.Fatalf("getEnvDuration = %v; want default", got)
	}
}
