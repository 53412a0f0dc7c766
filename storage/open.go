package storage

import (
	"context"
	"fmt"
	"time"

	"housing-dashboard/config"
	"housing-dashboard/utils"
)

// Open returns the dataset source selected by cfg.DatasetSource.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (TableSource, error) {
	switch cfg.DatasetSource {
	case config.SourceCSV:
		return NewCSVSource(cfg.DatasetPath, logger), nil
	case config.SourcePostgres:
		return NewPostgresStore(ctx, cfg.DSN(), Retry(cfg, logger), logger)
	}
	return nil, fmt.Errorf("storage: unknown dataset source %q", cfg.DatasetSource)
}

// Retry is the connect retry policy derived from cfg.
func Retry(cfg *config.Config, logger *utils.Logger) utils.RetryConfig {
	return utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
}
