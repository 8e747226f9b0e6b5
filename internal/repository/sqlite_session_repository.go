package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteSessionRepository struct {
	db *sqlx.DB
}

// NewSqliteSessionRepository returns a SQLite-backed SessionRepository.
func NewSqliteSessionRepository(db *sqlx.DB) SessionRepository {
	return &sqliteSessionRepository{db: db}
}

type sessionRow struct {
	ID        string    `db:"id"`
	AdminID   string    `db:"admin_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (r *sqliteSessionRepository) Create(ctx context.Context, s *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, admin_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.AdminID, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	return err
}

func (r *sqliteSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, admin_id, created_at, expires_at FROM admin_sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &model.Session{ID: row.ID, AdminID: row.AdminID, CreatedAt: row.CreatedAt, ExpiresAt: row.ExpiresAt}, nil
}

func (r *sqliteSessionRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id)
	return err
}

func (r *sqliteSessionRepository) DeleteByAdminID(ctx context.Context, adminID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE admin_id = ?`, adminID)
	return err
}

func (r *sqliteSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
