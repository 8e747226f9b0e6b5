package console

import (
	"context"
	"io"
	"sync"

	"github.com/deepinsight/backend/pkg/client"
)

// mockBackend is a Backend whose methods are func fields. Unset fields return
// zero values.
type mockBackend struct {
	AdminLoginFunc          func(ctx context.Context, cred client.Credentials) (*client.Session, error)
	AdminLogoutFunc         func(ctx context.Context, s *client.Session) error
	CurrentUserFunc         func(ctx context.Context) *client.Session
	SubmitInquiryFunc       func(ctx context.Context, in client.InquiryInput) (*client.Inquiry, error)
	FetchPostsFunc          func(ctx context.Context, req client.PageRequest) (*client.Page[client.Post], error)
	FetchPostByIDFunc       func(ctx context.Context, id string) (*client.Post, error)
	FetchInquiriesFunc      func(ctx context.Context, s *client.Session, req client.InquiryPageRequest) (*client.Page[client.Inquiry], error)
	UpdateInquiryStatusFunc func(ctx context.Context, s *client.Session, id, status string) (*client.Inquiry, error)
	FetchAllPostsFunc       func(ctx context.Context, s *client.Session, req client.PageRequest) (*client.Page[client.Post], error)
	CreatePostFunc          func(ctx context.Context, s *client.Session, in client.PostInput) (*client.Post, error)
	UpdatePostFunc          func(ctx context.Context, s *client.Session, id string, in client.PostInput) (*client.Post, error)
	DeletePostFunc          func(ctx context.Context, s *client.Session, id string) error
	UploadImageFunc         func(ctx context.Context, s *client.Session, filename string, r io.Reader) (*client.UploadedImage, error)
}

func (m *mockBackend) AdminLogin(ctx context.Context, cred client.Credentials) (*client.Session, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, cred)
	}
	return nil, &client.Error{Kind: client.ErrAuth, Message: "이메일 또는 비밀번호가 올바르지 않습니다."}
}

func (m *mockBackend) AdminLogout(ctx context.Context, s *client.Session) error {
	if m.AdminLogoutFunc != nil {
		return m.AdminLogoutFunc(ctx, s)
	}
	return nil
}

func (m *mockBackend) CurrentUser(ctx context.Context) *client.Session {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return nil
}

func (m *mockBackend) SubmitInquiry(ctx context.Context, in client.InquiryInput) (*client.Inquiry, error) {
	if m.SubmitInquiryFunc != nil {
		return m.SubmitInquiryFunc(ctx, in)
	}
	return &client.Inquiry{ID: "inq-1", Name: in.Name, Email: in.Email, ServiceTypes: in.ServiceTypes, Status: client.StatusPending}, nil
}

func (m *mockBackend) FetchPosts(ctx context.Context, req client.PageRequest) (*client.Page[client.Post], error) {
	if m.FetchPostsFunc != nil {
		return m.FetchPostsFunc(ctx, req)
	}
	return &client.Page[client.Post]{Content: []client.Post{}}, nil
}

func (m *mockBackend) FetchPostByID(ctx context.Context, id string) (*client.Post, error) {
	if m.FetchPostByIDFunc != nil {
		return m.FetchPostByIDFunc(ctx, id)
	}
	return nil, &client.Error{Kind: client.ErrNotFound, Message: "not found"}
}

func (m *mockBackend) FetchInquiries(ctx context.Context, s *client.Session, req client.InquiryPageRequest) (*client.Page[client.Inquiry], error) {
	if m.FetchInquiriesFunc != nil {
		return m.FetchInquiriesFunc(ctx, s, req)
	}
	return &client.Page[client.Inquiry]{Content: []client.Inquiry{}}, nil
}

func (m *mockBackend) UpdateInquiryStatus(ctx context.Context, s *client.Session, id, status string) (*client.Inquiry, error) {
	if m.UpdateInquiryStatusFunc != nil {
		return m.UpdateInquiryStatusFunc(ctx, s, id, status)
	}
	return &client.Inquiry{ID: id, Status: status}, nil
}

func (m *mockBackend) FetchAllPosts(ctx context.Context, s *client.Session, req client.PageRequest) (*client.Page[client.Post], error) {
	if m.FetchAllPostsFunc != nil {
		return m.FetchAllPostsFunc(ctx, s, req)
	}
	return &client.Page[client.Post]{Content: []client.Post{}}, nil
}

func (m *mockBackend) CreatePost(ctx context.Context, s *client.Session, in client.PostInput) (*client.Post, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, s, in)
	}
	return &client.Post{ID: "post-new", Title: in.Title}, nil
}

func (m *mockBackend) UpdatePost(ctx context.Context, s *client.Session, id string, in client.PostInput) (*client.Post, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, s, id, in)
	}
	return &client.Post{ID: id, Title: in.Title}, nil
}

func (m *mockBackend) DeletePost(ctx context.Context, s *client.Session, id string) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, s, id)
	}
	return nil
}

func (m *mockBackend) UploadImage(ctx context.Context, s *client.Session, filename string, r io.Reader) (*client.UploadedImage, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, s, filename, r)
	}
	return &client.UploadedImage{URL: "/uploads/images/" + filename}, nil
}

// fakeList records Reload and Clear calls.
type fakeList struct {
	mu      sync.Mutex
	reloads int
	clears  int
}

func (l *fakeList) Reload(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reloads++
	return nil
}

func (l *fakeList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clears++
}

func (l *fakeList) counts() (reloads, clears int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reloads, l.clears
}

func testSession() *client.Session {
	return &client.Session{Token: "tok", Admin: client.Admin{ID: "admin-1", Email: "admin@deepinsight.kr", Name: "운영자"}}
}
