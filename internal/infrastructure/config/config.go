package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds the lifetime of issued JWTs.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo      MongoConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Notify     NotifyConfig
	LoginGuard LoginGuardConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures the outbound mail sender. When Host is empty the
// service runs without a mailer and notifications are logged only.
type SMTPConfig struct {
	Host           string `env:"SMTP_HOST"`
	Port           int    `env:"SMTP_PORT, default=587"`
	Username       string `env:"SMTP_USERNAME"`
	Password       string `env:"SMTP_PASSWORD"`
	From           string `env:"SMTP_FROM, default=inventory@stockwise.local"`
	AlertRecipient string `env:"ALERT_RECIPIENT, default=inventory-alerts@stockwise.local"`
}

// NotifyConfig tunes the async notification dispatcher.
type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

// LoginGuardConfig tunes the failed-login lockout.
type LoginGuardConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
