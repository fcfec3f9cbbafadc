package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/dynamodb"
	"catalog/httpserver"
	"catalog/movie"
	"catalog/pkg/config"
	"catalog/pkg/logger"
	"catalog/pkg/sentry"
	"catalog/postgres"
	"catalog/user"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Catalog API
// @version 1.0
// @description Movie catalog and user profile services.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		sentry.Fatal(err)
		log.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, users, err := repositories(ctx, cfg)
	if err != nil {
		return err
	}

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movie.NewUsecase(movies)),
		httpserver.WithUserService(user.NewUsecase(users)),
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "storage", cfg.Storage)
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func repositories(ctx context.Context, cfg *config.Config) (movie.Repository, user.Repository, error) {
	switch cfg.Storage {
	case config.StorageDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, nil, err
		}
		ids := dynamodb.NewSequence(client, cfg.DynamoDB.CountersTable)
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable, ids),
			dynamodb.NewUserRepository(client, cfg.DynamoDB.UsersTable, ids),
			nil
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres connection: %w", err)
		}
		return postgres.NewMovieRepository(db), postgres.NewUserRepository(db), nil
	}
}
