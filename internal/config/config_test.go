package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.SQLitePath != "bastion.db" {
		t.Fatalf("sqlite path = %q", cfg.SQLitePath)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("read timeout = %v", cfg.ReadTimeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BASTION_ADDR", ":9999")
	t.Setenv("BASTION_CORS_ORIGINS", "https://a.mil, https://b.mil")
	t.Setenv("BASTION_READ_TIMEOUT", "5s")
	t.Setenv("BASTION_WRITE_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.mil" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout = %v", cfg.ReadTimeout)
	}
	// malformed values fall back to the default
	if cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("write timeout = %v", cfg.WriteTimeout)
	}
}
