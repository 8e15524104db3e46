package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

// Store is the record store the services run against. ExecTx runs fn as one
// unit of work: every write made through the Querier it receives is committed
// together, or none is.
type Store interface {
	sqlc.Querier
	ExecTx(ctx context.Context, fn func(q sqlc.Querier) error) error
}

// PgStore is the Postgres-backed Store.
type PgStore struct {
	*sqlc.Queries
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{Queries: sqlc.New(db), db: db}
}

func (s *PgStore) ExecTx(ctx context.Context, fn func(q sqlc.Querier) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
