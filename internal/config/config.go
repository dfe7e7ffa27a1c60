package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           int
	DatabaseURL    string
	NatsURL        string
	NatsToken      string
	LogLevel       string
	AIBackend      string
	OllamaHost     string
	Model          string
	CFAccountID    string
	CFAPIToken     string
	SessionTTL     time.Duration
	AllowedOrigins []string
	StrictCORS     bool
}

func Load() Config {
	return Config{
		Port:           envInt("PERSONAD_PORT", 8780),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		NatsURL:        envStr("NATS_URL", ""),
		NatsToken:      envStr("NATS_TOKEN", ""),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		AIBackend:      envStr("AI_BACKEND", "ollama"),
		OllamaHost:     envStr("OLLAMA_HOST", "http://localhost:11434"),
		Model:          envStr("LLM_MODEL", "gemma3"),
		CFAccountID:    envStr("CF_ACCOUNT_ID", ""),
		CFAPIToken:     envStr("CF_API_TOKEN", ""),
		SessionTTL:     envDur("SESSION_TTL", 15*time.Minute),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		StrictCORS:     envBool("CORS_STRICT", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
