package main

import (
	"context"
	"fmt"

	"mini-storefront/internal/catalog"
	"mini-storefront/internal/config"
	"mini-storefront/internal/database"
	"mini-storefront/internal/store"

	"github.com/rs/zerolog"
)

// loadCatalog builds the catalogue from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Catalog, error) {
	var (
		loader   catalog.Loader
		location string
	)

	switch cfg.Catalog.Source {
	case config.CatalogFile:
		loader = catalog.NewFileLoader(logger)
		location = cfg.Catalog.File

	case config.CatalogS3:
		fileLoader := catalog.NewFileLoader(logger)
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
		loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
		location = cfg.Catalog.File

	default:
		loader = catalog.NewStaticLoader(nil)
	}

	cat, err := catalog.Load(ctx, loader, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	logger.Info().
		Str("source", cfg.Catalog.Source).
		Int("products", cat.Len()).
		Msg("catalogue loaded")

	return cat, nil
}

// openBackend opens the configured cart storage. The returned close function
// releases everything the backend holds, including any database pool.
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Backend, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		backend := store.NewMemoryBackend()
		return backend, func() { backend.Close() }, nil

	case config.StorePostgres:
		pool, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		backend := store.NewPostgresBackend(pool, logger)
		return backend, func() {
			backend.Close()
			pool.Close()
		}, nil

	default:
		backend, err := store.NewSQLiteBackend(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return backend, func() {
			if err := backend.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close sqlite store")
			}
		}, nil
	}
}
