package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT, default=5000"`
	Env          string        `env:"ENV, default=development"`
	JWTSecret    string        `env:"JWT_SECRET, required"`
	LogLevel     string        `env:"LOG_LEVEL, default=info"`
	FrontendURL  string        `env:"FRONTEND_URL, default=http://localhost:3000"`
	TokenTTL     time.Duration `env:"TOKEN_TTL, default=9h"`
	RateLimit    int           `env:"RATE_LIMIT, default=300"`
	RateWindow   time.Duration `env:"RATE_WINDOW, default=1m"`
	AuditWorkers int           `env:"AUDIT_WORKERS, default=4"`

	DB    DBConfig
	Redis RedisConfig
	Mongo MongoConfig
	R2    R2Config
}

type DBConfig struct {
	Server       string        `env:"DB_SERVER, default=localhost"`
	Port         int           `env:"DB_PORT, default=3306"`
	User         string        `env:"DB_USER, default=root"`
	Password     string        `env:"DB_PASSWORD"`
	Name         string        `env:"DB_NAME, default=dmm"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS, default=10"`
	CallTimeout  time.Duration `env:"DB_CALL_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"DB_IDLE_TIMEOUT, default=10s"`
}

// RedisConfig is optional: with no address the rate limiter counts in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig is optional: with no URI the audit trail is disabled.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=dmm_audit"`
}

type R2Config struct {
	Endpoint        string `env:"R2_ENDPOINT"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	Bucket          string `env:"R2_BUCKET_NAME"`
}

// Production reports whether cookies must be marked Secure.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	return &cfg, nil
}
