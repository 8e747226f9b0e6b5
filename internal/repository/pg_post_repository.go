package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgPostRepository は PostRepository の PostgreSQL 実装
type PgPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgPostRepository は PgPostRepository を生成する
func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

var _ PostRepository = (*PgPostRepository)(nil)

const postSelectCols = `id, title, content, author, category, image_url, published, views, created_at, updated_at`

func scanPost(scan func(...any) error) (*model.Post, error) {
	var p model.Post
	if err := scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Category, &p.ImageURL,
		&p.Published, &p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of posts ordered by created_at descending.
func (r *PgPostRepository) List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, int, error) {
	var conditions []string
	var args []any

	if !opts.IncludeUnpublished {
		conditions = append(conditions, "published = true")
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, opts.Size, model.Offset(opts.Page, opts.Size))
	query := `SELECT ` + postSelectCols + ` FROM posts ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	posts, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Recent は公開済みの最新投稿を limit 件返す
func (r *PgPostRepository) Recent(ctx context.Context, limit int) ([]*model.Post, error) {
	return r.query(ctx,
		`SELECT `+postSelectCols+` FROM posts WHERE published = true
		 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *PgPostRepository) query(ctx context.Context, query string, args ...any) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID は ID で投稿を取得する
func (r *PgPostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postSelectCols+` FROM posts WHERE id = $1`, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// IncrementViews は閲覧数を 1 増やす
func (r *PgPostRepository) IncrementViews(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id)
}

// Create は新しい投稿を作成する
func (r *PgPostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, author, category, image_url, published, views, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)
		 RETURNING id`,
		post.Title, post.Content, post.Author, post.Category, post.ImageURL, post.Published,
		post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
}

// Update は title, content, author, category, image_url, published, updated_at を更新する
func (r *PgPostRepository) Update(ctx context.Context, post *model.Post) error {
	if _, err := uuid.Parse(post.ID); err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts
		 SET title = $1, content = $2, author = $3, category = $4, image_url = $5,
		     published = $6, updated_at = $7
		 WHERE id = $8`,
		post.Title, post.Content, post.Author, post.Category, post.ImageURL,
		post.Published, post.UpdatedAt, post.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は投稿を物理削除する
func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM posts WHERE id = $1`, id)
}

// execOne runs a statement keyed by id and maps zero affected rows to ErrNotFound.
func (r *PgPostRepository) execOne(ctx context.Context, stmt, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
