package cmd

import (
	"context"
	"fmt"
	"log"

	"print-shop/internal/data/repository"
	"print-shop/pkg/database"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

// bootstrap loads config, builds the logger and opens the document store.
// The returned cleanup closes the store and flushes the logger.
func bootstrap(ctx context.Context) (*utils.Config, *zap.Logger, *repository.Repository, func(), error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	store, err := database.Open(ctx, config.Database)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, nil, fmt.Errorf("open %s store: %w", config.Database.Driver, err)
	}
	logger.Info("Database connected", zap.String("driver", store.Driver()))

	repos := repository.NewRepository(store, logger)
	if err := repos.EnsureIndexes(ctx); err != nil {
		store.Close(context.Background())
		logger.Sync()
		return nil, nil, nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}

	cleanup := func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
		logger.Sync()
	}
	return config, logger, repos, cleanup, nil
}
