package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resume-tailor/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port                string
	Env                 string
	CORSAllowOrigin     []string
	DatabaseURL         string
	RedisURL            string
	TrackerStore        string
	AnthropicModel      string
	GeminiModel         string
	LLMMaxTokens        int
	LLMTimeout          time.Duration
	ApifyBaseURL        string
	ScrapeTimeout       time.Duration
	DirectScrapeEnabled bool
	MaxUploadBytes      int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; existing env wins.
	for _, path := range []string{".env", "cmd/.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	store := normalizeStoreType(getEnv("TRACKER_STORE", "memory"))

	if store == "postgres" && dbURL == "" && IsDevLike(env) {
		telemetry.Warn("config.database_url_empty", map[string]any{"env": env, "fallback": "memory"})
		store = "memory"
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:         dbURL,
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		TrackerStore:        store,
		AnthropicModel:      getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMMaxTokens:        getEnvInt("LLM_MAX_TOKENS", 8000),
		LLMTimeout:          getEnvDuration("LLM_TIMEOUT", 120*time.Second),
		ApifyBaseURL:        getEnv("APIFY_BASE_URL", "https://api.apify.com"),
		ScrapeTimeout:       getEnvDuration("SCRAPE_TIMEOUT", 180*time.Second),
		DirectScrapeEnabled: getEnvBool("DIRECT_SCRAPE_ENABLED", false),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return val
}

// getEnvDuration accepts Go durations ("90s") or bare seconds ("90").
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw, "default": def.String()})
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsDevLike reports whether env tolerates missing backing stores by using memory.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	default:
		return "memory"
	}
}
