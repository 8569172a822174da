package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invitacion/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnavailable means the remote store could not be acquired. Callers run
// in offline mode when Connect returns it.
var ErrUnavailable = errors.New("remote store unavailable")

type PostgresStore struct {
	pool *pgxpool.Pool
	*Queries
}

func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		Queries: New(pool),
	}
}

// Connect opens a pool and checks it once. Every failure, including a
// missing source, is reported as ErrUnavailable.
func Connect(ctx context.Context, cfg config.DBConfig) (*PostgresStore, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("%w: no database source configured", ErrUnavailable)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return NewStore(pool), nil
}

func (s *PostgresStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
