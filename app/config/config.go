package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Addr       string
	DBPath     string
	BasePath   string
	MediaDir   string
	PageSize   int
	SessionTTL time.Duration
}

// Load reads configuration from a .env file if present, then from the
// environment, falling back to defaults.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:       getenv("BLOGICUM_ADDR", ":8080"),
		DBPath:     getenv("BLOGICUM_DB_PATH", "data/badger"),
		BasePath:   getenv("BLOGICUM_BASE_PATH", ""),
		MediaDir:   getenv("BLOGICUM_MEDIA_DIR", "data/media"),
		PageSize:   getenvInt("BLOGICUM_PAGE_SIZE", 10),
		SessionTTL: getenvDuration("BLOGICUM_SESSION_TTL", 24*time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
