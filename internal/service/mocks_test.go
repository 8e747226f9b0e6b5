package service

import (
	"context"
	"errors"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockInquiryRepository
// ---------------------------------------------------------------------------

type mockInquiryRepository struct {
	createFunc       func(ctx context.Context, inq *model.Inquiry) error
	listFunc         func(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, int, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Inquiry, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockInquiryRepository) Create(ctx context.Context, inq *model.Inquiry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, inq)
	}
	inq.ID = "inq-1"
	return nil
}

func (m *mockInquiryRepository) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, 0, nil
}

func (m *mockInquiryRepository) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockPostRepository
// ---------------------------------------------------------------------------

type mockPostRepository struct {
	listFunc           func(ctx context.Context, opts model.PostListOptions) ([]*model.Post, int, error)
	recentFunc         func(ctx context.Context, limit int) ([]*model.Post, error)
	getByIDFunc        func(ctx context.Context, id string) (*model.Post, error)
	incrementViewsFunc func(ctx context.Context, id string) error
	createFunc         func(ctx context.Context, post *model.Post) error
	updateFunc         func(ctx context.Context, post *model.Post) error
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockPostRepository) List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, 0, nil
}

func (m *mockPostRepository) Recent(ctx context.Context, limit int) ([]*model.Post, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPostRepository) IncrementViews(ctx context.Context, id string) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	post.ID = "post-1"
	return nil
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockAdminRepository
// ---------------------------------------------------------------------------

type mockAdminRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.Admin, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.Admin, error)
	upsertFunc      func(ctx context.Context, admin *model.Admin) error
}

func (m *mockAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAdminRepository) Upsert(ctx context.Context, admin *model.Admin) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, admin)
	}
	admin.ID = "admin-1"
	return nil
}

// ---------------------------------------------------------------------------
// memSessionRepository is a map-backed SessionRepository
// ---------------------------------------------------------------------------

type memSessionRepository struct {
	sessions map[string]*model.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: make(map[string]*model.Session)}
}

func (m *memSessionRepository) Create(_ context.Context, s *model.Session) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSessionRepository) FindByID(_ context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepository) DeleteByID(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepository) DeleteByAdminID(_ context.Context, adminID string) error {
	for id, s := range m.sessions {
		if s.AdminID == adminID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// failingSessionRepository fails every lookup.
type failingSessionRepository struct {
	*memSessionRepository
}

func (f *failingSessionRepository) FindByID(context.Context, string) (*model.Session, error) {
	return nil, errors.New("connection refused")
}

func (m *memSessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// mockNotifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	notifyFunc func(ctx context.Context, inq *model.Inquiry) error
}

func (m *mockNotifier) InquiryReceived(ctx context.Context, inq *model.Inquiry) error {
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, inq)
	}
	return nil
}
