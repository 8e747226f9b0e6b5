package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deepinsight/backend/internal/handler"
	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
	"github.com/deepinsight/backend/internal/service"
	"github.com/deepinsight/backend/internal/storage"
	"github.com/deepinsight/backend/pkg/auth"
)

const (
	testAdminEmail    = "admin@deepinsight.kr"
	testAdminPassword = "correct-horse"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testBackend is a real API server over an in-memory SQLite store.
type testBackend struct {
	server *httptest.Server
	store  *repository.Store
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	store := repository.NewSqliteStore(db)
	t.Cleanup(store.Close)

	signer := auth.NewSigner([]byte("test-secret-test-secret-test-secret"))
	sessions := service.NewSessionService(store.Sessions, signer, time.Hour)
	authService := service.NewAuthService(store.Admins, sessions)
	if _, err := authService.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword, "운영자"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	uploadDir := t.TempDir()
	srv := httptest.NewServer(handler.Routes(handler.Deps{
		DB:          store.DB,
		Inquiries:   service.NewInquiryService(store.Inquiries, nil),
		Posts:       service.NewPostService(store.Posts),
		Auth:        authService,
		Sessions:    sessions,
		Storage:     storage.NewLocalStorage(uploadDir, "/uploads"),
		UploadDir:   uploadDir,
		FrontendURL: "http://localhost:5173",
	}))
	t.Cleanup(srv.Close)
	return &testBackend{server: srv, store: store}
}

func (b *testBackend) client(opts ...Option) *Client {
	return New(b.server.URL, append([]Option{WithLogger(discardLogger)}, opts...)...)
}

func (b *testBackend) seedPost(t *testing.T, title string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:     title,
		Content:   title + " 본문",
		Author:    model.DefaultAuthor,
		Category:  model.CategoryNotice,
		Published: true,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := b.store.Posts.Create(context.Background(), p); err != nil {
		t.Fatalf("seed post %q: %v", title, err)
	}
	return p
}

func login(t *testing.T, c *Client) *Session {
	t.Helper()
	s, err := c.AdminLogin(context.Background(), Credentials{Email: testAdminEmail, Password: testAdminPassword})
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	return s
}

func kimInquiry() InquiryInput {
	return InquiryInput{
		Name:         "Kim",
		Email:        "kim@example.com",
		Message:      "hello",
		ServiceTypes: []string{"DEVOPS"},
	}
}
