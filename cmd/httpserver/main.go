package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cinedb/actor"
	"cinedb/httpserver"
	"cinedb/movie"
	"cinedb/pkg/config"
	"cinedb/pkg/ratelimit"
	"cinedb/pkg/sentry"
	"cinedb/postgres"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var options []httpserver.Options
	if cfg.Redis.Addr != "" {
		client, err := ratelimit.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("Cannot connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		options = append(options, httpserver.WithRateLimitStore(ratelimit.NewRedisStore(client, ratelimit.Options{
			Capacity:       cfg.RateLimit.Capacity,
			RefillInterval: cfg.RateLimit.RefillInterval,
			TTL:            cfg.RateLimit.TTL,
			Prefix:         cfg.RateLimit.Prefix,
		})))
		slog.Info("rate limiter backed by redis", "addr", cfg.Redis.Addr)
	}

	server := httpserver.Default(cfg, options...)
	server.ActorService = actor.NewUsecase(postgres.NewActorRepository(db))
	server.MovieService = movie.NewUsecase(postgres.NewMovieRepository(db))

	go func() {
		slog.Info("server started!", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.Error(err)
			slog.Error("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
