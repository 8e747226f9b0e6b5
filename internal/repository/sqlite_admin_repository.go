package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SqliteAdminRepository is the SQLite implementation of AdminRepository.
type SqliteAdminRepository struct {
	db *sqlx.DB
}

// NewSqliteAdminRepository creates a SqliteAdminRepository.
func NewSqliteAdminRepository(db *sqlx.DB) *SqliteAdminRepository {
	return &SqliteAdminRepository{db: db}
}

var _ AdminRepository = (*SqliteAdminRepository)(nil)

type adminRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *SqliteAdminRepository) findOne(ctx context.Context, where string, arg any) (*model.Admin, error) {
	var row adminRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM admins WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &model.Admin{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *SqliteAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail matches case-insensitively through the column's NOCASE collation.
func (r *SqliteAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *SqliteAdminRepository) Upsert(ctx context.Context, admin *model.Admin) error {
	var row struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO admins (id, email, name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET name = excluded.name, password_hash = excluded.password_hash
		 RETURNING id, created_at`,
		uuid.NewString(), admin.Email, admin.Name, admin.PasswordHash, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	admin.ID = row.ID
	admin.CreatedAt = row.CreatedAt
	return nil
}
