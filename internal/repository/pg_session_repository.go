package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSessionRepository returns a PostgreSQL-backed SessionRepository.
func NewPgSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &pgSessionRepository{pool: pool}
}

func (r *pgSessionRepository) Create(ctx context.Context, s *model.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_sessions (id, admin_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.AdminID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *pgSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	s := &model.Session{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, admin_id, created_at, expires_at FROM admin_sessions WHERE id = $1`,
		id).Scan(&s.ID, &s.AdminID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgSessionRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id)
	return err
}

func (r *pgSessionRepository) DeleteByAdminID(ctx context.Context, adminID string) error {
	if _, err := uuid.Parse(adminID); err != nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE admin_id = $1`, adminID)
	return err
}

func (r *pgSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
