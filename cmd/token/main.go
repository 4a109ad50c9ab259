package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cinedb/pkg/config"
	"cinedb/pkg/jwt"
)

func main() {
	var (
		subject string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "subject", "", "Subject stored in the token (required)")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime, defaults to AUTH_TOKEN_TTL minutes")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Error("AUTH_JWT_SECRET is not set, write routes are unprotected")
		os.Exit(1)
	}
	if ttl <= 0 {
		ttl = cfg.TokenLifetime()
	}

	token, err := jwt.NewJWTProvider(cfg.Auth.JWTSecret, ttl).GenerateAccessToken(subject)
	if err != nil {
		logger.Error("cannot generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
