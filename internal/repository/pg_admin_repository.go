package repository

import (
	"context"
	"errors"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgAdminRepository は AdminRepository の PostgreSQL 実装
type PgAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPgAdminRepository は PgAdminRepository を生成する
func NewPgAdminRepository(pool *pgxpool.Pool) *PgAdminRepository {
	return &PgAdminRepository{pool: pool}
}

var _ AdminRepository = (*PgAdminRepository)(nil)

const adminSelectCols = `id, email, name, password_hash, created_at`

func (r *PgAdminRepository) findOne(ctx context.Context, where string, arg any) (*model.Admin, error) {
	var a model.Admin
	err := r.pool.QueryRow(ctx, `SELECT `+adminSelectCols+` FROM admins WHERE `+where, arg).
		Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID は ID で管理者を取得する
func (r *PgAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, "id = $1", id)
}

// FindByEmail はメールアドレスで管理者を取得する
func (r *PgAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.findOne(ctx, "lower(email) = lower($1)", email)
}

// Upsert は email をキーに管理者を作成または更新する
func (r *PgAdminRepository) Upsert(ctx context.Context, admin *model.Admin) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admins (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash
		 RETURNING id, created_at`,
		admin.Email, admin.Name, admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt)
}
