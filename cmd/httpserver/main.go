package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"contactbook/contact"
	"contactbook/dynamodb"
	"contactbook/httpserver"
	"contactbook/pkg/config"
	"contactbook/pkg/sentry"
	"contactbook/redis"

	sentrygo "github.com/getsentry/sentry-go"
)

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

	repo, err := newContactRepository(context.Background(), cfg)
	if err != nil {
		slog.Error("Cannot connect to store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	server := httpserver.Default(cfg)
	if cfg.Port != 0 {
		server.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	server.ContactService = contact.NewUsecase(repo)

	slog.Info("server started!", "addr", server.Addr, "store", cfg.Store.Driver)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newContactRepository(ctx context.Context, cfg *config.Config) (contact.Repository, error) {
	switch cfg.Store.Driver {
	case "redis":
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redis.NewContactRepository(client), nil
	case "dynamodb":
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewContactRepository(client, cfg.DynamoDB.ContactsTable), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
