// Package config loads server settings from the environment with sane
// defaults for local development.
package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	SQLitePath   string
	RedisAddr    string
	RedisDB      int
	LogLevel     string
	LogFormat    string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads BASTION_* environment variables. Every field has a default, so
// an empty environment yields a runnable local configuration.
func Load() Config {
	return Config{
		Addr:         env("BASTION_ADDR", ":8080"),
		SQLitePath:   env("BASTION_SQLITE_PATH", "bastion.db"),
		RedisAddr:    env("BASTION_REDIS_ADDR", ""),
		RedisDB:      0,
		LogLevel:     env("BASTION_LOG_LEVEL", "info"),
		LogFormat:    env("BASTION_LOG_FORMAT", "json"),
		CORSOrigins:  splitList(env("BASTION_CORS_ORIGINS", "*")),
		ReadTimeout:  envDuration("BASTION_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: envDuration("BASTION_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  envDuration("BASTION_IDLE_TIMEOUT", 60*time.Second),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
