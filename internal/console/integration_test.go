package console

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
	"github.com/deepinsight/backend/pkg/client"
)

// newStack starts the API over an in-memory SQLite store and returns a client
// for it together with the store.
func newStack(t *testing.T) (*client.Client, *repository.Store) {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	store := repository.NewSqliteStore(db)
	t.Cleanup(store.Close)

	sessions := service.NewSessionService(store.Sessions, auth.NewSigner([]byte("console-test-secret-console-test")), time.Hour)
	authService := service.NewAuthService(store.Admins, sessions)
	if _, err := authService.EnsureAdmin(context.Background(), "admin@deepinsight.kr", "correct-horse", "운영자"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	dir := t.TempDir()
	srv := httptest.NewServer(handler.Routes(handler.Deps{
		DB:          store.DB,
		Inquiries:   service.NewInquiryService(store.Inquiries, nil),
		Posts:       service.NewPostService(store.Posts),
		Auth:        authService,
		Sessions:    sessions,
		Storage:     storage.NewLocalStorage(dir, "/uploads"),
		UploadDir:   dir,
		FrontendURL: "http://localhost:5173",
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return client.New(srv.URL, client.WithLogger(logger)), store
}

func TestIntegration_KimInquiry(t *testing.T) {
	c, store := newStack(t)
	closed := make(chan struct{})
	f := NewInquiryForm(c, WithResetDelay(20*time.Millisecond), WithOnClose(func() { close(closed) }))
	f.SetFields(InquiryFields{Name: "Kim", Email: "kim@example.com", Message: "hello"})
	f.Toggle(model.ServiceDevOps)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if st := f.State(); st.Status != FormSuccess || st.Submitted == nil || st.Submitted.Status != client.StatusPending {
		t.Fatalf("state = %+v", st)
	}

	list, total, err := store.Inquiries.List(context.Background(), model.InquiryListOptions{Page: 0, Size: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || list[0].Name != "Kim" || list[0].Status != model.InquiryStatusPending {
		t.Errorf("stored = %d %+v", total, list)
	}

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("form did not close")
	}
	if st := f.State(); st.Status != FormIdle || st.Fields.Name != "" || len(st.Selected) != 0 {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestIntegration_DeleteLastPost(t *testing.T) {
	c, _ := newStack(t)
	ctx := context.Background()
	p := NewAdminPanel(c, ConfirmFunc(func(string) bool { return true }))

	if err := p.Guard.Login(ctx, "admin@deepinsight.kr", "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	p.NewPost()
	p.UpdatePostForm(func(f *PostForm) { f.Title = "유일한 공지"; f.Content = "본문"; f.Category = client.CategoryNotice })
	if err := p.SubmitPost(ctx); err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}
	st := p.Posts.State()
	if len(st.Items) != 1 {
		t.Fatalf("posts = %+v", st.Items)
	}

	if err := p.DeletePost(ctx, st.Items[0].ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	st = p.Posts.State()
	if !st.Empty() || st.Error != "" {
		t.Errorf("state after delete = %+v", st)
	}

	if err := p.Guard.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if c.CurrentUser(ctx) != nil {
		t.Error("CurrentUser after logout is not nil")
	}
}
