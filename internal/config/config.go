package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment with
// sensible local-development defaults. A .env file is honored when present.
type Config struct {
	ListenAddr string
	// DatabaseURL selects the Postgres domain list store; when empty the
	// JSON file store under DataDir is used instead.
	DatabaseURL   string
	DataDir       string
	ModelDir      string
	PublicDir     string
	DNSServer     string
	LookupTimeout time.Duration
}

// Load reads the configuration from the environment.
func Load() Config {
	// Best effort: a missing .env just means plain env vars are in charge.
	_ = godotenv.Load()

	return Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataDir:       getenv("DATA_DIR", "data"),
		ModelDir:      getenv("MODEL_DIR", "model"),
		PublicDir:     getenv("PUBLIC_DIR", "public"),
		DNSServer:     getenv("DNS_SERVER", "1.1.1.1:53"),
		LookupTimeout: getenvDuration("LOOKUP_TIMEOUT", 5*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
