// ABOUTME: Configuration loader for the capacity planner service
// ABOUTME: Loads settings from environment variables and an optional .env file

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/markalston/capacity-planner/models"
)

// Session storage backends
const (
	SessionBackendMemory = "memory"
	SessionBackendFile   = "file"
	SessionBackendBolt   = "bolt"
	SessionBackendRedis  = "redis"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, memoized calculation responses (default 300)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Sessions
	SessionBackend  string // memory, file, bolt, redis (default: memory)
	SessionTTL      int    // seconds, memory and redis only (default 86400, 0 = never expire)
	SessionDir      string // file backend directory (default: XDG config dir)
	SessionBoltPath string // bolt database file (default: capacity-planner.db)

	// Redis (SESSION_BACKEND=redis)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitWrite   int  // Requests per minute for write endpoints (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Scenarios
	DefaultProviderMode models.ProviderMode // provider mode for new scenario pairs (default: neutral)
}

// LoadDotEnv reads variables from the given .env files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		SessionBackend:  strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
		SessionTTL:      getEnvInt("SESSION_TTL", 86400),
		SessionDir:      os.Getenv("SESSION_DIR"),
		SessionBoltPath: getEnv("SESSION_BOLT_PATH", "capacity-planner.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		DefaultProviderMode: models.ProviderMode(strings.ToLower(getEnv("DEFAULT_PROVIDER_MODE", string(models.ProviderNeutral)))),
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendFile, SessionBackendBolt, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND must be one of memory, file, bolt, redis, got %q", cfg.SessionBackend)
	}

	if !cfg.DefaultProviderMode.Valid() {
		return nil, fmt.Errorf("DEFAULT_PROVIDER_MODE must be neutral or aws-equivalent, got %q", cfg.DefaultProviderMode)
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL cannot be negative, got %d", cfg.CacheTTL)
	}
	if cfg.SessionTTL < 0 {
		return nil, fmt.Errorf("SESSION_TTL cannot be negative, got %d", cfg.SessionTTL)
	}
	if cfg.RedisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB cannot be negative, got %d", cfg.RedisDB)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
