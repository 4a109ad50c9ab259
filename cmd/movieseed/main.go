package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cinedb/pkg/config"
	"cinedb/postgres"

	"gorm.io/gorm"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
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
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(ctx, zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	count, err := importMovies(ctx, db, csvPath, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "movies", count)
}

func downloadAndExtract(ctx context.Context, zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(ctx, zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

// titleYear matches the release year MovieLens appends to titles, e.g. "Heat (1995)".
var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})(?:[-–]\d{0,4})?\)$`)

const noGenres = "(no genres listed)"

// Rows already present with the same name and year are left untouched.
const insertMovie = `
INSERT INTO movies (name, genre, year)
SELECT ?, ?, ?
WHERE NOT EXISTS (SELECT 1 FROM movies WHERE name = ? AND year = ?)
`

type seedMovie struct {
	Name  string
	Genre string
	Year  int
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	skipped := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for limit <= 0 || count < limit {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			m, ok := parseMovieRecord(record, idxTitle, idxGenres)
			if !ok {
				skipped++
				continue
			}

			res := tx.Exec(insertMovie, m.Name, m.Genre, m.Year, m.Name, m.Year)
			if res.Error != nil {
				return fmt.Errorf("insert %q: %w", m.Name, res.Error)
			}
			if res.RowsAffected > 0 {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("skipped rows without a release year", "rows", skipped)
	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

// parseMovieRecord splits the year off the title and keeps the first listed genre.
func parseMovieRecord(record []string, idxTitle, idxGenres int) (seedMovie, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return seedMovie{}, false
	}

	match := titleYear.FindStringSubmatch(strings.TrimSpace(record[idxTitle]))
	if match == nil {
		return seedMovie{}, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return seedMovie{}, false
	}

	genre := strings.TrimSpace(record[idxGenres])
	if genre == noGenres {
		genre = ""
	}
	genre, _, _ = strings.Cut(genre, "|")

	return seedMovie{Name: match[1], Genre: genre, Year: year}, true
}
