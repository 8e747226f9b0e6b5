package handler

import (
	"context"
	"io"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock InquiryService
// ---------------------------------------------------------------------------

type mockInquiryService struct {
	submitFunc       func(ctx context.Context, inq *model.Inquiry) error
	listFunc         func(ctx context.Context, opts model.InquiryListOptions) (model.Page[*model.Inquiry], error)
	updateStatusFunc func(ctx context.Context, id, status string) (*model.Inquiry, error)
}

func (m *mockInquiryService) Submit(ctx context.Context, inq *model.Inquiry) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, inq)
	}
	return nil
}

func (m *mockInquiryService) List(ctx context.Context, opts model.InquiryListOptions) (model.Page[*model.Inquiry], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return model.NewPage[*model.Inquiry](nil, 0, opts.Page, opts.Size), nil
}

func (m *mockInquiryService) UpdateStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &model.Inquiry{ID: id, Status: status}, nil
}

// ---------------------------------------------------------------------------
// Mock PostService
// ---------------------------------------------------------------------------

type mockPostService struct {
	listFunc   func(ctx context.Context, opts model.PostListOptions) (model.Page[*model.Post], error)
	recentFunc func(ctx context.Context) ([]*model.Post, error)
	getFunc    func(ctx context.Context, id string) (*model.Post, error)
	createFunc func(ctx context.Context, in service.PostInput) (*model.Post, error)
	updateFunc func(ctx context.Context, id string, in service.PostInput) (*model.Post, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockPostService) List(ctx context.Context, opts model.PostListOptions) (model.Page[*model.Post], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return model.NewPage[*model.Post](nil, 0, opts.Page, opts.Size), nil
}

func (m *mockPostService) Recent(ctx context.Context) ([]*model.Post, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx)
	}
	return []*model.Post{}, nil
}

func (m *mockPostService) Get(ctx context.Context, id string) (*model.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Post{ID: id}, nil
}

func (m *mockPostService) Create(ctx context.Context, in service.PostInput) (*model.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.Post{ID: "post-1", Title: in.Title}, nil
}

func (m *mockPostService) Update(ctx context.Context, id string, in service.PostInput) (*model.Post, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return &model.Post{ID: id, Title: in.Title}, nil
}

func (m *mockPostService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc        func(ctx context.Context, email, password string) (*service.LoginResult, error)
	logoutFunc       func(ctx context.Context, token string) error
	currentAdminFunc func(ctx context.Context, adminID string) (*model.Admin, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) CurrentAdmin(ctx context.Context, adminID string) (*model.Admin, error) {
	if m.currentAdminFunc != nil {
		return m.currentAdminFunc(ctx, adminID)
	}
	return &model.Admin{ID: adminID}, nil
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, email, password, name string) (*model.Admin, error) {
	return &model.Admin{ID: "admin-1", Email: email, Name: name}, nil
}

// ---------------------------------------------------------------------------
// Mock Storage
// ---------------------------------------------------------------------------

type mockStorage struct {
	saveFunc func(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

func (m *mockStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, data, contentType)
	}
	_, _ = io.Copy(io.Discard, data)
	return "/uploads/" + key, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return nil
}

// ---------------------------------------------------------------------------
// Mock SessionValidator
// ---------------------------------------------------------------------------

type mockValidator struct {
	validateFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, token)
	}
	return "", service.ErrInvalidSession
}
