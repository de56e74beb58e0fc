package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Redis (optional - leave empty to run without idempotency and pub/sub notifications)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Notifications
	NotifyChannelPrefix    string        `env:"NOTIFY_CHANNEL_PREFIX"    envDefault:"notifications:"`
	NotifyMaxRetries       int           `env:"NOTIFY_MAX_RETRIES"       envDefault:"3"`
	NotifyRetryInterval    time.Duration `env:"NOTIFY_RETRY_INTERVAL"    envDefault:"50ms"`
	NotifyBreakerThreshold uint32        `env:"NOTIFY_BREAKER_THRESHOLD" envDefault:"5"`
	NotifyBreakerTimeout   time.Duration `env:"NOTIFY_BREAKER_TIMEOUT"   envDefault:"30s"`

	// Load shedding
	RateLimitRPS        float64       `env:"RATE_LIMIT_RPS"        envDefault:"100"`
	RateLimitBurst      int           `env:"RATE_LIMIT_BURST"      envDefault:"200"`
	TransferMaxInflight int64         `env:"TRANSFER_MAX_INFLIGHT" envDefault:"64"`
	TransferQueueWait   time.Duration `env:"TRANSFER_QUEUE_WAIT"   envDefault:"2s"`

	// Seed accounts loaded at startup
	SeedFile string `env:"SEED_FILE" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis URL was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}
