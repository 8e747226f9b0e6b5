package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deepinsight/backend/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	store := NewSqliteStore(db)
	t.Cleanup(store.Close)
	return store
}

func seedPost(t *testing.T, repo PostRepository, title string, at time.Time, published bool) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:     title,
		Content:   title + " body",
		Author:    model.DefaultAuthor,
		Published: published,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create %q: %v", title, err)
	}
	return p
}

func TestSqlite_Ping(t *testing.T) {
	store := newTestStore(t)
	if err := store.DB.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSqliteInquiryRepository_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inq := &model.Inquiry{
		Name:        "Kim",
		Email:       "kim@example.kr",
		Company:     "Acme",
		Message:     "RAG 도입 상담",
		ServiceType: []string{model.ServiceCloudRAG, model.ServiceMLOps},
		Status:      model.InquiryStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Inquiries.Create(ctx, inq); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inq.ID == "" {
		t.Fatal("expected ID to be set after Create")
	}

	got, err := store.Inquiries.GetByID(ctx, inq.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Kim" || got.Company != "Acme" {
		t.Errorf("got %+v", got)
	}
	if len(got.ServiceType) != 2 || got.ServiceType[0] != model.ServiceCloudRAG || got.ServiceType[1] != model.ServiceMLOps {
		t.Errorf("ServiceType = %v", got.ServiceType)
	}
	if got.Status != model.InquiryStatusPending {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestSqliteInquiryRepository_GetByID_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Inquiries.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSqliteInquiryRepository_UpdateStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inq := &model.Inquiry{
		Name: "Lee", Email: "lee@example.kr", Message: "hi",
		ServiceType: []string{model.ServiceDevOps},
		Status:      model.InquiryStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Inquiries.Create(ctx, inq); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Inquiries.UpdateStatus(ctx, inq.ID, model.InquiryStatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := store.Inquiries.GetByID(ctx, inq.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.InquiryStatusInProgress {
		t.Errorf("Status = %q, want %q", got.Status, model.InquiryStatusInProgress)
	}

	if err := store.Inquiries.UpdateStatus(ctx, "missing", model.InquiryStatusCompleted); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound for unknown id, got %v", err)
	}
}

func TestSqliteInquiryRepository_ListFiltersByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	statuses := []string{model.InquiryStatusPending, model.InquiryStatusCompleted, model.InquiryStatusPending}
	for i, s := range statuses {
		inq := &model.Inquiry{
			Name: "n", Email: "n@example.kr", Message: "m",
			ServiceType: []string{model.ServiceOther},
			Status:      s,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Inquiries.Create(ctx, inq); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, total, err := store.Inquiries.List(ctx, model.InquiryListOptions{Status: model.InquiryStatusPending, Page: 0, Size: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("total=%d len=%d, want 2/2", total, len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("expected newest first, got %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}

	_, total, err = store.Inquiries.List(ctx, model.InquiryListOptions{Status: "all", Size: 20})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestSqlitePostRepository_ListNewestFirstWithPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	t1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	seedPost(t, store.Posts, "t1", t1, true)
	seedPost(t, store.Posts, "t2", t1.Add(time.Hour), true)
	seedPost(t, store.Posts, "t3", t1.Add(2*time.Hour), true)

	posts, total, err := store.Posts.List(ctx, model.PostListOptions{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	page := model.NewPage(posts, total, 0, 2)
	if page.TotalElements != 3 || page.TotalPages != 2 {
		t.Errorf("totalElements=%d totalPages=%d, want 3/2", page.TotalElements, page.TotalPages)
	}
	if len(page.Content) != 2 || page.Content[0].Title != "t3" || page.Content[1].Title != "t2" {
		t.Errorf("unexpected first page: %v", titles(page.Content))
	}

	posts, _, err = store.Posts.List(ctx, model.PostListOptions{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "t1" {
		t.Errorf("unexpected second page: %v", titles(posts))
	}
}

func TestSqlitePostRepository_UnpublishedHiddenFromPublicList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seedPost(t, store.Posts, "visible", now, true)
	seedPost(t, store.Posts, "draft", now.Add(time.Minute), false)

	posts, total, err := store.Posts.List(ctx, model.PostListOptions{Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || posts[0].Title != "visible" {
		t.Errorf("public list = %v (total %d)", titles(posts), total)
	}

	_, total, err = store.Posts.List(ctx, model.PostListOptions{Size: 10, IncludeUnpublished: true})
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if total != 2 {
		t.Errorf("admin total = %d, want 2", total)
	}

	recent, err := store.Posts.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Recent returned %d posts, want 1", len(recent))
	}
}

func TestSqlitePostRepository_UpdateIncrementDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := seedPost(t, store.Posts, "before", now, true)

	p.Title = "after"
	p.Category = model.CategoryNotice
	p.UpdatedAt = now.Add(time.Minute)
	if err := store.Posts.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := store.Posts.IncrementViews(ctx, p.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}

	got, err := store.Posts.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "after" || got.Category != model.CategoryNotice || got.Views != 1 {
		t.Errorf("got %+v", got)
	}

	if err := store.Posts.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Posts.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: want ErrNotFound, got %v", err)
	}

	posts, total, err := store.Posts.List(ctx, model.PostListOptions{Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	page := model.NewPage(posts, total, 0, 10)
	if page.TotalElements != 0 || page.TotalPages != 0 || page.Content == nil || len(page.Content) != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
}

func TestSqliteAdminRepository_UpsertAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &model.Admin{Email: "admin@deepinsight.kr", Name: "First", PasswordHash: "h1"}
	if err := store.Admins.Upsert(ctx, a); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	firstID := a.ID

	again := &model.Admin{Email: "admin@deepinsight.kr", Name: "Second", PasswordHash: "h2"}
	if err := store.Admins.Upsert(ctx, again); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if again.ID != firstID {
		t.Errorf("Upsert created a new row: %s != %s", again.ID, firstID)
	}

	got, err := store.Admins.FindByEmail(ctx, "ADMIN@deepinsight.kr")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.Name != "Second" || got.PasswordHash != "h2" {
		t.Errorf("got %+v", got)
	}

	if _, err := store.Admins.FindByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSqliteSessionRepository_Lifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &model.Admin{Email: "ops@deepinsight.kr", Name: "Ops", PasswordHash: "h"}
	if err := store.Admins.Upsert(ctx, a); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	now := time.Now().UTC()
	live := &model.Session{ID: "live", AdminID: a.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &model.Session{ID: "stale", AdminID: a.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []*model.Session{live, stale} {
		if err := store.Sessions.Create(ctx, s); err != nil {
			t.Fatalf("Create %s: %v", s.ID, err)
		}
	}

	n, err := store.Sessions.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired removed %d, want 1", n)
	}
	if _, err := store.Sessions.FindByID(ctx, "stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale session still present: %v", err)
	}

	got, err := store.Sessions.FindByID(ctx, "live")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.AdminID != a.ID {
		t.Errorf("AdminID = %q", got.AdminID)
	}

	if err := store.Sessions.DeleteByID(ctx, "live"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := store.Sessions.DeleteByID(ctx, "live"); err != nil {
		t.Errorf("DeleteByID should be idempotent, got %v", err)
	}
}

func titles(posts []*model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}
