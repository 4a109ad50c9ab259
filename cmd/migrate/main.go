package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"cinedb/pkg/config"
	"cinedb/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir  string
		down bool
		max  int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	flag.IntVar(&max, "max", 0, "Maximum number of migrations to run (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot connect to db", "error", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("cannot get db instance", "error", err)
		os.Exit(1)
	}

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}
	total, err := migrate.ExecMax(sqlDB, "postgres", migrations, direction, max)
	if err != nil {
		logger.Error("cannot execute migration", "error", err)
		os.Exit(1)
	}

	logger.Info("applied migrations", "total", total, "down", down)
}
