// Package starspace assembles the HTTP API: storage, cache, services
// and routes, plus graceful shutdown of the server.
package starspace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/Tado3/Star-Space/internal/cache"
	"github.com/Tado3/Star-Space/internal/config"
	"github.com/Tado3/Star-Space/internal/migrations"
	installationservice "github.com/Tado3/Star-Space/internal/services/installation"
	orderservice "github.com/Tado3/Star-Space/internal/services/order"
	statsservice "github.com/Tado3/Star-Space/internal/services/stats"
	subscriberservice "github.com/Tado3/Star-Space/internal/services/subscriber"
	"github.com/Tado3/Star-Space/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	subscriberService := subscriberservice.NewSubscriberService(db, cacheRedis, logger)
	installationService := installationservice.NewInstallationService(db, cacheRedis, logger)
	orderService := orderservice.NewOrderService(db, logger)
	statsService := statsservice.NewStatsService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, subscriberService, installationService, orderService, statsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
