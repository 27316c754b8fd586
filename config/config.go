package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	AutoMigrate bool
	LogLevel    slog.Level
	CORSOrigins []string

	DB struct {
		Host     string
		User     string
		Password string
		Name     string
		Port     string
	}
	TokenDBPath string

	SecretKey string
	TokenTTL  time.Duration

	SuperAdmin struct {
		Name     string
		Email    string
		Password string
	}
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found; using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	cfg.Port = firstNonEmpty(getenv("PORT"), getenv("AWS_LWA_PORT"), "8080")
	cfg.Env = firstNonEmpty(getenv("ENV"), "dev")

	if v := getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = b
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(firstNonEmpty(getenv("LOG_LEVEL"), "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	cfg.DB.Host = getenv("DB_HOST")
	cfg.DB.User = getenv("DB_USER")
	cfg.DB.Password = getenv("DB_PASSWORD")
	cfg.DB.Name = getenv("DB_NAME")
	cfg.DB.Port = firstNonEmpty(getenv("DB_PORT"), "5432")
	cfg.TokenDBPath = firstNonEmpty(getenv("TOKEN_DB_PATH"), "token_blacklist.db")

	cfg.SecretKey = getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}

	ttl, err := time.ParseDuration(firstNonEmpty(getenv("TOKEN_TTL"), "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive")
	}
	cfg.TokenTTL = ttl

	cfg.SuperAdmin.Name = firstNonEmpty(getenv("SUPERADMIN_NAME"), "Super Admin")
	cfg.SuperAdmin.Email = getenv("SUPERADMIN_EMAIL")
	cfg.SuperAdmin.Password = getenv("SUPERADMIN_PASSWORD")
	if (cfg.SuperAdmin.Email == "") != (cfg.SuperAdmin.Password == "") {
		return nil, fmt.Errorf("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set together")
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
