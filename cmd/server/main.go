package main

import (
	"context"
	"log"
	"os"

	"kanboard/internal/config"
	"kanboard/internal/logger"
	"kanboard/internal/repository"
	"kanboard/internal/server"
	"kanboard/internal/telemetry"

	_ "kanboard/docs"

	"github.com/spf13/cobra"
)

const serviceName = "kanboard"

// @title           Kanban Board API
// @version         1.0
// @description     Boards hold ordered lists, lists hold ordered cards.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "kanboard",
	Short:         "Kanban board API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		lg.WithError(err).Warn("tracing disabled")
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			lg.WithError(err).Warn("failed to flush traces")
		}
	}()

	s, err := server.Init(cfg, lg)
	if err != nil {
		return err
	}
	return s.Run()
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	db, err := repository.Open(cfg, logger.Gorm(lg))
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Migrate(db, cfg); err != nil {
		return err
	}
	lg.WithField("driver", cfg.DBDriver).Info("✅ Migrations applied")
	return nil
}
