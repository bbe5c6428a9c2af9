// charges-data-api serves a company's secured charge records, kept current by
// the mortgage delta feed and enriched with company metrics on reads.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/charges-data-api-sub000/internal/api/rest"
	"github.com/companieshouse/charges-data-api-sub000/internal/charges"
	"github.com/companieshouse/charges-data-api-sub000/internal/config"
	"github.com/companieshouse/charges-data-api-sub000/internal/logging"
	"github.com/companieshouse/charges-data-api-sub000/internal/metrics"
	"github.com/companieshouse/charges-data-api-sub000/internal/notify"
	notifynats "github.com/companieshouse/charges-data-api-sub000/internal/notify/nats"
	"github.com/companieshouse/charges-data-api-sub000/internal/server"
	mongostore "github.com/companieshouse/charges-data-api-sub000/internal/storage/mongo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer logging.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := mongostore.Connect(ctx, cfg.Storage)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	publisher, err := notifynats.Connect(cfg.Notify.URL, notifynats.Options{
		StreamName:    cfg.Notify.StreamName,
		SubjectPrefix: cfg.Notify.SubjectPrefix,
		RetryAttempts: cfg.Notify.RetryAttempts,
	})
	if err != nil {
		slog.Error("Failed to connect to notification stream", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	notifier := notify.NewNotifier(publisher, cfg.Notify.Subject)
	provider := metrics.New(cfg.Metrics)
	service := charges.NewService(store, notifier, provider, slog.Default())

	mux := http.NewServeMux()
	handler := rest.NewHandler(service, cfg.Auth.InternalPrivilege)
	handler.RegisterRoutes(mux)

	srv := server.New(cfg.Server, mux, slog.Default())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
