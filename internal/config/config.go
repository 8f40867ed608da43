package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	// UserStore selects the backing store: "postgres" or "redis".
	UserStore string

	LogJSON bool
}

// Load reads configuration from the environment once at startup. A local
// .env file is applied first when present. The signing secret has no
// default: startup must fail without it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppPort: firstNonEmpty(os.Getenv("APP_PORT"), "8080"),

		SecretKey:       os.Getenv("SECRET_KEY"),
		AccessTokenTTL:  durationFromEnv("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: durationFromEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		UserStore: firstNonEmpty(os.Getenv("USER_STORE"), "postgres"),

		LogJSON: os.Getenv("LOG_JSON") == "true",
	}

	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY is not set")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// durationFromEnv reads a Go duration from env var name, falling back to
// defaultVal when empty or invalid.
func durationFromEnv(name string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
