package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/config"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/infra/postgres"
	pgrepo "github.com/MrLeaw/aws-clf-c02-quiz/internal/infra/postgres/repository"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/infra/sqlite"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/repository"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/service"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/storage"
)

// openStore picks the progress backend by driver. The returned func releases
// any connection it holds.
func openStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.ProgressStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile:
		path := cfg.Storage.ProgressPath()
		lg.Info("using progress file", zap.String("path", path))
		return repository.NewProgressRepository(path), noop, nil

	case config.DriverSQLite:
		path := cfg.Storage.SQLitePath()
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		lg.Info("using sqlite progress store", zap.String("path", path), zap.String("profile", cfg.Storage.Profile))
		return sqlite.NewProgressRepository(db, cfg.Storage.Profile), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, noop, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}

		repo := pgrepo.NewProgressRepository(pool, postgres.NewTransactor(pool), cfg.Storage.Profile)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("migrate postgres: %w", err)
		}
		lg.Info("using postgres progress store", zap.String("profile", cfg.Storage.Profile))
		return repo, pool.Close, nil

	case config.DriverMemory:
		lg.Info("using in-memory progress store")
		return storage.NewProgressStorage(nil), noop, nil
	}

	return nil, noop, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
}
