package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenTTL != 9*time.Hour {
		t.Errorf("expected 9h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimit != 300 || cfg.RateWindow != time.Minute {
		t.Errorf("unexpected rate limit: %d per %s", cfg.RateLimit, cfg.RateWindow)
	}
	if cfg.DB.MaxOpenConns != 10 || cfg.DB.CallTimeout != 30*time.Second || cfg.DB.IdleTimeout != 10*time.Second {
		t.Errorf("unexpected pool settings: %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "" || cfg.Mongo.URI != "" {
		t.Errorf("expected optional stores to default to disabled")
	}
	if cfg.Production() {
		t.Errorf("expected development by default")
	}
}

func TestLoadWith_RequiresJWTSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"ENV":            "production",
		"DB_SERVER":      "db.internal",
		"DB_PORT":        "3307",
		"R2_BUCKET_NAME": "dpi-images",
		"RATE_LIMIT":     "50",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Production() {
		t.Errorf("expected production")
	}
	if cfg.DB.Server != "db.internal" || cfg.DB.Port != 3307 {
		t.Errorf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.R2.Bucket != "dpi-images" || cfg.RateLimit != 50 {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadWith_RejectsNonPositiveRateLimit(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"RATE_LIMIT": "0",
	}))
	if err == nil {
		t.Fatalf("expected error for RATE_LIMIT=0")
	}
}
