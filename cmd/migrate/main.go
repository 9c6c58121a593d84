package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"medico/config"
	"medico/internal/infra/clock"
	logs "medico/internal/infra/log"
	"medico/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

const migrateTimeout = 5 * time.Minute

func main() {
	var (
		db     *gorm.DB
		logger *slog.Logger
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			clock.NewSystemClock,
			postgres.New,
		),
		fx.Populate(&db, &logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start migration", slog.Any("error", err))
		os.Exit(1)
	}

	err := postgres.Migrate(ctx, db)
	if stopErr := app.Stop(ctx); stopErr != nil {
		logger.Warn("Failed to close database", slog.Any("error", stopErr))
	}
	if err != nil {
		logger.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Migration completed")
}
