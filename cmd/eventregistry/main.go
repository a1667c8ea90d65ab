// Command eventregistry runs the interactive event registration console.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"eventregistry/config"
	"eventregistry/internal/delivery/console"
	"eventregistry/internal/repository/sqlstore"
	"eventregistry/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// stdout belongs to the menu.
	logger := cfg.NewLogger(os.Stderr)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("eventregistry stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dialect := sqlstore.Dialect(cfg.DBDriver)
	db, err := sqlstore.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	logger.Info("database ready", "driver", cfg.DBDriver)

	eventRepo := sqlstore.NewEventRepository(db, logger)
	participantRepo := sqlstore.NewParticipantRepository(db, dialect)
	reportRepo := sqlstore.NewReportRepository(db)

	eventSvc := services.NewEventService(eventRepo, logger, cfg.DBTimeout)
	attendeeSvc := services.NewAttendeeService(eventRepo, participantRepo, logger, cfg.DBTimeout)
	reportSvc := services.NewReportService(reportRepo, cfg.DBTimeout)

	app := console.NewConsole(logger, eventSvc, attendeeSvc, reportSvc)
	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
