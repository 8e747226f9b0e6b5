package repository

import (
	"context"
	"time"

	"github.com/deepinsight/backend/internal/model"
)

// DB checks that the underlying store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// InquiryRepository persists inquiries submitted through the public form.
type InquiryRepository interface {
	// Create inserts a new inquiry and populates inq.ID.
	Create(ctx context.Context, inq *model.Inquiry) error
	// List returns one page of inquiries, newest first, and the total row count
	// matching the filter.
	List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, int, error)
	// GetByID returns ErrNotFound when no inquiry has the given id.
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	// UpdateStatus returns ErrNotFound when no inquiry has the given id.
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostRepository persists board posts.
type PostRepository interface {
	// List returns one page of posts, newest first, and the total row count.
	List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, int, error)
	// Recent returns the newest published posts.
	Recent(ctx context.Context, limit int) ([]*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	IncrementViews(ctx context.Context, id string) error
	Create(ctx context.Context, post *model.Post) error
	// Update replaces the editable fields and updated_at.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

// AdminRepository persists admin accounts.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	// Upsert creates the admin or replaces name and password hash of the
	// existing admin with the same email. admin.ID is populated either way.
	Upsert(ctx context.Context, admin *model.Admin) error
}

// SessionRepository handles persistence for admin sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByAdminID(ctx context.Context, adminID string) error
	// DeleteExpired removes every session that expired before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store groups the repositories of one backing database.
type Store struct {
	DB        DB
	Inquiries InquiryRepository
	Posts     PostRepository
	Admins    AdminRepository
	Sessions  SessionRepository
	Close     func()
}
