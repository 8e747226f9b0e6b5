package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SqlitePostRepository is the SQLite implementation of PostRepository.
type SqlitePostRepository struct {
	db *sqlx.DB
}

// NewSqlitePostRepository creates a SqlitePostRepository.
func NewSqlitePostRepository(db *sqlx.DB) *SqlitePostRepository {
	return &SqlitePostRepository{db: db}
}

var _ PostRepository = (*SqlitePostRepository)(nil)

type postRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	Category  string    `db:"category"`
	ImageURL  string    `db:"image_url"`
	Published bool      `db:"published"`
	Views     int       `db:"views"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r postRow) toModel() *model.Post {
	return &model.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Author:    r.Author,
		Category:  r.Category,
		ImageURL:  r.ImageURL,
		Published: r.Published,
		Views:     r.Views,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toPosts(rows []postRow) []*model.Post {
	posts := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts
}

func (r *SqlitePostRepository) List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, int, error) {
	var conditions []string
	var args []any
	if !opts.IncludeUnpublished {
		conditions = append(conditions, "published = 1")
	}
	if opts.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, opts.Category)
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts `+where, args...); err != nil {
		return nil, 0, err
	}

	var rows []postRow
	args = append(args, opts.Size, model.Offset(opts.Page, opts.Size))
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM posts `+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		args...); err != nil {
		return nil, 0, err
	}
	return toPosts(rows), total, nil
}

func (r *SqlitePostRepository) Recent(ctx context.Context, limit int) ([]*model.Post, error) {
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM posts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit); err != nil {
		return nil, err
	}
	return toPosts(rows), nil
}

func (r *SqlitePostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var row postRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM posts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *SqlitePostRepository) IncrementViews(ctx context.Context, id string) error {
	return rowsAffectedOne(r.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = ?`, id))
}

func (r *SqlitePostRepository) Create(ctx context.Context, post *model.Post) error {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, author, category, image_url, published, views, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		id, post.Title, post.Content, post.Author, post.Category, post.ImageURL, post.Published,
		post.CreatedAt.UTC(), post.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

func (r *SqlitePostRepository) Update(ctx context.Context, post *model.Post) error {
	return rowsAffectedOne(r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, content = ?, author = ?, category = ?, image_url = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title, post.Content, post.Author, post.Category, post.ImageURL, post.Published,
		post.UpdatedAt.UTC(), post.ID,
	))
}

func (r *SqlitePostRepository) Delete(ctx context.Context, id string) error {
	return rowsAffectedOne(r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id))
}
