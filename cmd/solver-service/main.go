package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	v1 "github.com/ddsimoes/optaplanner/api/v1"
	"github.com/ddsimoes/optaplanner/internal/config"
	"github.com/ddsimoes/optaplanner/internal/handlers"
	"github.com/ddsimoes/optaplanner/internal/server"
	"github.com/ddsimoes/optaplanner/internal/services"
	"github.com/ddsimoes/optaplanner/internal/store"
	"github.com/ddsimoes/optaplanner/internal/store/migrations"
	"github.com/ddsimoes/optaplanner/pkg/notify"
	"github.com/ddsimoes/optaplanner/pkg/nqueens"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "solver-service",
		Short:        "HTTP service that runs long-lived solve jobs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)
	log := zap.S().Named("main")

	db, err := store.NewDB(databasePath(cfg))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.NewStore(db)

	var notifier *notify.Notifier
	if cfg.Solver.WebhookURL != "" {
		notifier = notify.NewNotifier(cfg.Solver.WebhookURL, cfg.Solver.WebhookRetries)
	}

	solverSrv := services.NewSolverService(nqueens.NewJSONFactory(), cfg.Solver.ParallelSolves, st, notifier)
	defer solverSrv.Close()

	handler := handlers.New(solverSrv)
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handler)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	srv.Stop(context.Background())
	return nil
}

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func databasePath(cfg *config.Configuration) string {
	if cfg.Solver.DataFolder == "" {
		return ":memory:"
	}
	return filepath.Join(cfg.Solver.DataFolder, "solver.db")
}
