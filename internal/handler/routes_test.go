package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/service"
)

func newTestRoutes(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	h := Routes(Deps{
		DB:        &mockDB{},
		Inquiries: &mockInquiryService{},
		Posts:     &mockPostService{},
		Auth: &mockAuthService{
			currentAdminFunc: func(_ context.Context, id string) (*model.Admin, error) {
				return &model.Admin{ID: id}, nil
			},
		},
		Sessions: &mockValidator{
			validateFunc: func(_ context.Context, token string) (string, error) {
				if token == "good" {
					return "admin-1", nil
				}
				return "", service.ErrInvalidSession
			},
		},
		Storage:     &mockStorage{},
		UploadDir:   dir,
		FrontendURL: "http://localhost:5173",
	})
	return h, dir
}

func TestRoutes_PublicAndAdmin(t *testing.T) {
	h, _ := newTestRoutes(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"public posts", http.MethodGet, "/api/posts", "", http.StatusOK},
		{"recent posts", http.MethodGet, "/api/posts/recent", "", http.StatusOK},
		{"post detail", http.MethodGet, "/api/posts/p1", "", http.StatusOK},
		{"admin without token", http.MethodGet, "/api/admin/inquiries", "", http.StatusUnauthorized},
		{"admin with bad token", http.MethodGet, "/api/admin/posts", "bad", http.StatusUnauthorized},
		{"admin inquiries", http.MethodGet, "/api/admin/inquiries", "good", http.StatusOK},
		{"admin me", http.MethodGet, "/api/admin/me", "good", http.StatusOK},
		{"delete without token", http.MethodDelete, "/api/admin/posts/p1", "", http.StatusUnauthorized},
		{"wrong method", http.MethodDelete, "/api/posts/p1", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rec.Code)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing security headers")
			}
		})
	}
}

func TestRoutes_ServesUploadsWithoutListing(t *testing.T) {
	h, dir := newTestRoutes(t)
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "a.png"), pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/images/a.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/images/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("directory listing: expected 404, got %d", rec.Code)
	}
}

func TestRoutes_RequestIDIsReused(t *testing.T) {
	h, _ := newTestRoutes(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}

func TestRoutes_RecoversFromPanic(t *testing.T) {
	h := Routes(Deps{
		DB: &mockDB{},
		Posts: &mockPostService{
			recentFunc: func(context.Context) ([]*model.Post, error) { panic("boom") },
		},
		Sessions: &mockValidator{},
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/recent", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRoutes_ServiceErrorLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Routes(Deps{
		DB: &mockDB{},
		Posts: &mockPostService{
			recentFunc: func(context.Context) ([]*model.Post, error) { return nil, errors.New("db down") },
		},
		Sessions: &mockValidator{},
	})
	req := httptest.NewRequest(http.MethodGet, "/api/posts/recent", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"msg":"request failed"`) {
			if !strings.Contains(line, `"request_id":"req-42"`) {
				t.Errorf("error log without request id: %s", line)
			}
			return
		}
	}
	t.Errorf("no error log written: %s", buf.String())
}

func TestRoutes_SessionStoreFailureIs500(t *testing.T) {
	h := Routes(Deps{
		DB:        &mockDB{},
		Inquiries: &mockInquiryService{},
		Sessions: &mockValidator{
			validateFunc: func(context.Context, string) (string, error) {
				return "", errors.New("find session: connection refused")
			},
		},
	})
	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
