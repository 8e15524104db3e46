package cli

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/set-night/o2ledger"
	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/repository"
)

// openStore connects to Postgres. The caller closes the pool.
func openStore(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, *repository.PgStore, error) {
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, repository.NewPgStore(pool), nil
}

func migrateUp(cfg *config.Config) error {
	migrationsFS, err := fs.Sub(o2ledger.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	return repository.RunMigrations(cfg.DatabaseURL, migrationsFS)
}
