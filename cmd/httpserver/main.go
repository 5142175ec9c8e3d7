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

	"smdb/httpserver"
	"smdb/memory"
	"smdb/movie"
	"smdb/pkg/config"
	"smdb/pkg/sentry"
	"smdb/postgres"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
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

	repo, err := newMovieRepository(cfg, logger)
	if err != nil {
		slog.Error("Cannot open movie storage", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}

	server := httpserver.Default(cfg)
	server.Logger = logger
	server.MovieService = movie.NewUsecase(repo, movie.NewValidator(time.Now))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server started!", "addr", server.Addr, "storage", cfg.Storage)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}

func newMovieRepository(cfg *config.Config, logger *slog.Logger) (movie.Repository, error) {
	if cfg.Storage != config.StoragePostgres {
		return memory.NewMovieRepository(memory.NewDB()), nil
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
		return nil, err
	}
	return postgres.NewMovieRepository(db), nil
}
