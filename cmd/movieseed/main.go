package main

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"smdb/movie"
	"smdb/pkg/config"
	"smdb/postgres"

	_ "github.com/lib/pq"
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger, csvPath, zipURL, limit); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanups still happen.
func run(logger *slog.Logger, csvPath, zipURL string, limit int) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("seeding needs persistent storage, got %q", cfg.Storage)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("open postgres connection: %w", err)
	}
	svc := movie.NewUsecase(postgres.NewMovieRepository(db), movie.NewValidator(time.Now))

	if csvPath == "" {
		path, cleanup, err := downloadAndExtract(zipURL)
		if err != nil {
			return fmt.Errorf("download dataset: %w", err)
		}
		defer cleanup()
		csvPath = path
	}

	return seedFile(context.Background(), svc, csvPath, limit)
}

func seedFile(ctx context.Context, svc movie.Service, csvPath string, limit int) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	stats, err := importMovies(ctx, svc, file, limit)
	if err != nil {
		return fmt.Errorf("import stopped after %d movies: %w", stats.Imported, err)
	}

	slog.Info("import completed", "imported", stats.Imported, "skipped", stats.Skipped)
	return nil
}

func downloadAndExtract(zipURL string) (string, func(), error) {
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
	if err := downloadFile(zipURL, zipPath); err != nil {
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

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
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
		return copyZipEntry(file, filepath.Join(destDir, filepath.Base(file.Name)))
	}

	return "", errors.New("movies.csv not found in zip")
}

func copyZipEntry(file *zip.File, destPath string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", err
	}
	return destPath, out.Close()
}
