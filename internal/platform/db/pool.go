package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// LazyPool opens the process-wide pool on first use and hands the same pool
// to every later caller. A failed open is not cached, so the next call retries.
type LazyPool struct {
	databaseURL string
	maxConns    int32
	minConns    int32
	open        func(ctx context.Context, url string, maxConns, minConns int32) (*pgxpool.Pool, error)

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewLazyPool(databaseURL string, maxConns, minConns int32) *LazyPool {
	return &LazyPool{
		databaseURL: databaseURL,
		maxConns:    maxConns,
		minConns:    minConns,
		open:        NewPool,
	}
}

// Get returns the shared pool, creating it if needed.
func (l *LazyPool) Get(ctx context.Context) (*pgxpool.Pool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pool != nil {
		return l.pool, nil
	}

	pool, err := l.open(ctx, l.databaseURL, l.maxConns, l.minConns)
	if err != nil {
		return nil, err
	}
	l.pool = pool
	return pool, nil
}

// Close releases the pool if it was ever opened.
func (l *LazyPool) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pool != nil {
		l.pool.Close()
		l.pool = nil
	}
}
