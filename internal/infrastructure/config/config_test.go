package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("SessionTTL = %s, want 30m", cfg.SessionTTL())
	}
	if cfg.Session.CookieName != "retail.sid" {
		t.Errorf("CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Stock.Low != 5 || cfg.Stock.High != 15 {
		t.Errorf("thresholds = %d/%d, want 5/15", cfg.Stock.Low, cfg.Stock.High)
	}
	if !cfg.Database.AutoSchema {
		t.Error("AutoSchema should default to true")
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty", cfg.Redis.Addr)
	}
	if secret, fallback := cfg.SessionSecret(); !fallback || secret == "" {
		t.Errorf("SessionSecret() = %q, %v; want development fallback", secret, fallback)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "8081",
		"SESSION_SECRET":   "s3cret",
		"SESSION_MAX_AGE":  "60000",
		"EMAIL_USER":       "shop@x.io",
		"ACTIVITY_WORKERS": "4",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8081 || cfg.Activity.Workers != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.SessionTTL() != time.Minute {
		t.Errorf("SessionTTL = %s, want 1m", cfg.SessionTTL())
	}
	if secret, fallback := cfg.SessionSecret(); fallback || secret != "s3cret" {
		t.Errorf("SessionSecret() = %q, %v", secret, fallback)
	}
	if got := cfg.SupportAddress(); got != "shop@x.io" {
		t.Errorf("SupportAddress() = %q, want EMAIL_USER fallback", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port out of range":   {"PORT": "70000"},
		"zero session age":    {"SESSION_MAX_AGE": "0"},
		"negative threshold":  {"LOW_STOCK_THRESHOLD": "-1"},
		"negative workers":    {"ACTIVITY_WORKERS": "-2"},
		"non-numeric port":    {"PORT": "http"},
		"email port too high": {"EMAIL_PORT": "99999"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
