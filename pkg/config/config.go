package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	// Redis backs the shared rate limiter. An empty Addr keeps the limiter in memory.
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB"`
	}
	RateLimit struct {
		Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"20"`
		RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"50ms"`
		TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
		Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
	}
	// Auth.JWTSecret turns on bearer tokens for the mutating routes.
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL  int    `envconfig:"AUTH_TOKEN_TTL" default:"60"`
	}
}

// Origins splits ALLOW_ORIGINS on commas. An unset value allows any origin.
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowOrigins) == "" {
		return []string{"*"}
	}
	parts := strings.Split(c.AllowOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// TokenLifetime converts AUTH_TOKEN_TTL minutes to a duration.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.Auth.TokenTTL) * time.Minute
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
