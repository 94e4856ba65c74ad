// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/questline/questline/internal/api"
	"github.com/questline/questline/internal/catalog"
	catalogpg "github.com/questline/questline/internal/catalog/postgres"
	"github.com/questline/questline/internal/config"
	inventorypg "github.com/questline/questline/internal/inventory/postgres"
	"github.com/questline/questline/internal/logging"
	"github.com/questline/questline/internal/observability"
	"github.com/questline/questline/internal/progression"
	progressionpg "github.com/questline/questline/internal/progression/postgres"
	"github.com/questline/questline/internal/store"
	"github.com/questline/questline/pkg/errutil"
)

// NewServeCmd creates the serve subcommand. Flag names mirror config keys so
// the flags layer in config.Load picks them up directly.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Questline API server",
		Long: `Start the HTTP API server, serving catalog management and
player progression routes, plus a metrics listener when enabled.`,
		RunE: runServe,
	}

	defaults := config.Default()
	cmd.Flags().String("server.host", defaults.Server.Host, "bind host for the API server")
	cmd.Flags().Int("server.port", defaults.Server.Port, "bind port for the API server")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("logging.level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	cmd.Flags().String("logging.format", defaults.Logging.Format, "log format (json, text)")
	cmd.Flags().Bool("metrics.enabled", defaults.Metrics.Enabled, "enable the metrics listener")
	cmd.Flags().Int("metrics.port", defaults.Metrics.Port, "bind port for the metrics listener")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("questline", version, cfg.Logging.Format, cfg.Logging.Level)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var (
		obs      *observability.Server
		obsErrCh <-chan error
		metrics  progression.MetricsRecorder
	)
	if cfg.Metrics.Enabled {
		obs = observability.NewServer(cfg.MetricsAddr(), func() bool {
			return pool.Ping(context.Background()) == nil
		})
		obsErrCh, err = obs.Start()
		if err != nil {
			return err
		}
		metrics = obs.Metrics()
	}

	catalogSvc := catalog.NewService(catalog.ServiceConfig{
		Characters: catalogpg.NewCharacterRepository(pool),
		Quests:     catalogpg.NewQuestRepository(pool),
		Items:      catalogpg.NewItemRepository(pool),
	})
	inventoryRepo := inventorypg.NewRepository(pool)
	progressionSvc := progression.NewService(progression.ServiceConfig{
		Characters:  progressionpg.NewPlayerCharacterRepository(pool),
		Completions: progressionpg.NewCompletionRepository(pool),
		Catalog:     catalogSvc,
		Items:       inventoryRepo,
		Tx:          progressionpg.NewTransactor(pool),
		Metrics:     metrics,
		Logger:      logger,
	})

	handler := api.NewHandler(api.HandlerConfig{
		Catalog:     catalogSvc,
		Progression: progressionSvc,
		Inventory:   inventoryRepo,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- srv.ListenAndServe()
	}()
	logger.Info("api server started", "addr", cfg.ServerAddr())

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErrCh:
		errutil.LogError(logger, "api server failed", err)
		return oops.Code("SERVER_FAILED").Wrap(err)
	case err := <-obsErrCh:
		errutil.LogError(logger, "observability server failed", err)
		return oops.Code("OBSERVABILITY_FAILED").Wrap(err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	if obs != nil {
		if err := obs.Stop(shutdownCtx); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
