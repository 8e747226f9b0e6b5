package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return pool, nil
}

// NewPgStore wires every PostgreSQL repository around one pool.
func NewPgStore(pool *pgxpool.Pool) *Store {
	return &Store{
		DB:        pool,
		Inquiries: NewPgInquiryRepository(pool),
		Posts:     NewPgPostRepository(pool),
		Admins:    NewPgAdminRepository(pool),
		Sessions:  NewPgSessionRepository(pool),
		Close:     pool.Close,
	}
}

// Open connects to the store selected by driver ("postgres" or "sqlite").
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "", "postgres", "postgresql", "pgx":
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPgStore(pool), nil
	case "sqlite":
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return NewSqliteStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
