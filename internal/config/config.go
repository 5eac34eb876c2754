// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverSupabase = "supabase"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the server reads at startup.
type Config struct {
	AppEnv            string
	LogLevel          string
	ServerPort        string
	CORSAllowedOrigin string

	StoreDriver string
	SupabaseURL string
	SupabaseKey string
	SQLitePath  string

	GeminiAPIKey       string
	GeminiDefaultModel string
	GenerateTimeout    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedKeyPrefix string
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// Load reads envFile (when it exists) and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	cfg := &Config{
		AppEnv:             envString("APP_ENV", "development"),
		LogLevel:           envString("LOG_LEVEL", "info"),
		ServerPort:         envString("SERVER_PORT", "8080"),
		CORSAllowedOrigin:  envString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		StoreDriver:        strings.ToLower(envString("STORE_DRIVER", DriverSupabase)),
		SupabaseURL:        envString("SUPABASE_URL", ""),
		SupabaseKey:        envString("SUPABASE_KEY", ""),
		SQLitePath:         envString("SQLITE_PATH", "gamemaster.db"),
		GeminiAPIKey:       envString("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiDefaultModel: envString("GEMINI_DEFAULT_MODEL", "gemini-2.0-flash"),
		RedisAddr:          envString("REDIS_ADDR", ""),
		RedisPassword:      envString("REDIS_PASSWORD", ""),
		FeedKeyPrefix:      envString("FEED_KEY_PREFIX", "gm:"),
	}

	var err error
	if cfg.GenerateTimeout, err = envDuration("GENERATE_TIMEOUT", 120*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}

	switch cfg.StoreDriver {
	case DriverSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY must be set for the supabase store"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of %s, %s", cfg.StoreDriver, DriverSupabase, DriverSQLite))
	}
	if cfg.GeminiAPIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY (or GOOGLE_API_KEY) must be set"))
	}
	if cfg.GenerateTimeout <= 0 {
		errs = append(errs, fmt.Errorf("GENERATE_TIMEOUT must be positive, got %s", cfg.GenerateTimeout))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}
