package config

import (
	"errors"
	"os"
	"time"
)

// Config holds process configuration read from the environment. Database
// and Redis/queue settings stay env-driven inside their own adapters
// (DB_URL, REDIS_URL); this covers the rest.
type Config struct {
	Addr      string
	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string
}

// Load reads configuration from the environment. JWT_SECRET is the only
// required setting.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:      getenv("ADDR", ":8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    24 * time.Hour,
		JWTIssuer: getenv("JWT_ISSUER", "go-parley"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("config: JWT_TTL must be a duration like 24h")
		}
		cfg.JWTTTL = ttl
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
