// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Environment variable names.
const (
	EnvDB            = "EVENTRA_DB"
	EnvBackend       = "EVENTRA_BACKEND"
	EnvRedisAddr     = "EVENTRA_REDIS_ADDR"
	EnvRedisPassword = "EVENTRA_REDIS_PASSWORD"
	EnvRedisDB       = "EVENTRA_REDIS_DB"
	EnvAdminEmail    = "EVENTRA_ADMIN_EMAIL"
	EnvAdminPassword = "EVENTRA_ADMIN_PASSWORD"
	EnvLogLevel      = "EVENTRA_LOG_LEVEL"
)

const (
	DefaultDB        = "eventra.db"
	DefaultRedisAddr = "localhost:6379"
)

type Config struct {
	DB       string
	Backend  string
	Redis    Redis
	Admin    Admin
	LogLevel slog.Level
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Admin holds the administrator credentials. Empty fields mean the built-in
// defaults.
type Admin struct {
	Email    string
	Password string
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then builds
// a Config from the environment. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset values.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		DB:      get(EnvDB, DefaultDB),
		Backend: strings.ToLower(get(EnvBackend, BackendSQLite)),
		Redis: Redis{
			Addr:     get(EnvRedisAddr, DefaultRedisAddr),
			Password: get(EnvRedisPassword, ""),
		},
		Admin: Admin{
			Email:    get(EnvAdminEmail, ""),
			Password: get(EnvAdminPassword, ""),
		},
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendRedis {
		return Config{}, fmt.Errorf("%s: unknown backend %q (want %s or %s)", EnvBackend, cfg.Backend, BackendSQLite, BackendRedis)
	}

	db, err := strconv.Atoi(get(EnvRedisDB, "0"))
	if err != nil || db < 0 {
		return Config{}, fmt.Errorf("%s: want a non-negative integer, got %q", EnvRedisDB, get(EnvRedisDB, ""))
	}
	cfg.Redis.DB = db

	level, err := ParseLevel(get(EnvLogLevel, "info"))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// ParseLevel reads a slog level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
