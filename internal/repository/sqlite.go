package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// OpenSQLite opens (or creates) a SQLite database and applies the schema.
// Pass "" or ":memory:" for an in-memory database.
func OpenSQLite(path string) (*sqlx.DB, error) {
	var dsn string
	if path == "" || path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = path
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
		}
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite doesn't support concurrent writes, and every :memory:
	// connection is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

// NewSqliteStore wires every SQLite repository around one database handle.
func NewSqliteStore(db *sqlx.DB) *Store {
	return &Store{
		DB:        sqlitePinger{db: db},
		Inquiries: NewSqliteInquiryRepository(db),
		Posts:     NewSqlitePostRepository(db),
		Admins:    NewSqliteAdminRepository(db),
		Sessions:  NewSqliteSessionRepository(db),
		Close:     func() { _ = db.Close() },
	}
}

type sqlitePinger struct {
	db *sqlx.DB
}

func (p sqlitePinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// rowsAffectedOne maps an Exec result that touched no rows to ErrNotFound.
func rowsAffectedOne(res interface{ RowsAffected() (int64, error) }, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
