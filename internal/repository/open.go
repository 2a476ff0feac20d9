package repository

import (
	"context"
	"fmt"
	"time"

	"proveedores/internal/config"
	"proveedores/internal/infra"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const setupRetryInterval = 5 * time.Second

// Open builds the store selected by cfg.StoreDriver. Schema setup (indexes,
// tables) runs in the background until it succeeds, so an unreachable store
// at startup does not stop the process. ctx bounds that background work.
func Open(ctx context.Context, cfg *config.Config) (ProveedorRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := infra.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		repo := NewMongoProveedorRepository(client, cfg.MongoDatabase)
		go runSetup(ctx, "mongo indexes", repo.EnsureIndexes)
		return repo, nil

	case config.DriverPostgres:
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		go runSetup(ctx, "postgres migrate", func(ctx context.Context) error {
			return infra.Migrate(ctx, db)
		})
		return NewProveedorRepository(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// OpenSync is Open for one-shot tools: schema setup runs inline and its
// failure is returned.
func OpenSync(ctx context.Context, cfg *config.Config) (ProveedorRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := infra.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		repo := NewMongoProveedorRepository(client, cfg.MongoDatabase)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repo, nil

	case config.DriverPostgres:
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := infra.Migrate(ctx, db); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return NewProveedorRepository(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func runSetup(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if err := infra.RetryUntilSuccess(ctx, name, setupRetryInterval, fn); err != nil {
		log.Warn().Err(err).Str("task", name).Msg("store setup abandoned")
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
