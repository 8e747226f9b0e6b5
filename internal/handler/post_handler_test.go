package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
	"github.com/deepinsight/backend/internal/service"
)

func TestPostHandler_List_PublicExcludesDrafts(t *testing.T) {
	var got model.PostListOptions
	h := NewPostHandler(&mockPostService{
		listFunc: func(_ context.Context, opts model.PostListOptions) (model.Page[*model.Post], error) {
			got = opts
			return model.NewPage[*model.Post](nil, 0, opts.Page, 10), nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/posts?page=0&size=10&category=notice", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.IncludeUnpublished {
		t.Error("public listing must not include drafts")
	}
	if got.Category != model.CategoryNotice {
		t.Errorf("Category = %q", got.Category)
	}
	if !strings.Contains(rec.Body.String(), `"content":[]`) {
		t.Errorf("expected empty content array, got %s", rec.Body.String())
	}
}

func TestPostHandler_AdminList_IncludesDrafts(t *testing.T) {
	var got model.PostListOptions
	h := NewPostHandler(&mockPostService{
		listFunc: func(_ context.Context, opts model.PostListOptions) (model.Page[*model.Post], error) {
			got = opts
			return model.Page[*model.Post]{}, nil
		},
	})
	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))
	if !got.IncludeUnpublished {
		t.Error("admin listing must include drafts")
	}
}

func TestPostHandler_List_ValidationError(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		listFunc: func(context.Context, model.PostListOptions) (model.Page[*model.Post], error) {
			return model.Page[*model.Post]{}, &service.ValidationError{Field: "page", Message: "bad page"}
		},
	})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/posts?page=-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestPostHandler_Get(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		getFunc: func(_ context.Context, id string) (*model.Post, error) {
			if id == "p1" {
				return &model.Post{ID: "p1", Title: "공지", Views: 3}, nil
			}
			return nil, repository.ErrNotFound
		},
	})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/{id}", h.Get)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/p1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var post model.Post
	_ = json.NewDecoder(rec.Body).Decode(&post)
	if post.Title != "공지" || post.Views != 3 {
		t.Errorf("post = %+v", post)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error != "not_found" || resp.Message == "" {
		t.Errorf("error body = %+v", resp)
	}
}

func TestPostHandler_Create(t *testing.T) {
	var got service.PostInput
	h := NewPostHandler(&mockPostService{
		createFunc: func(_ context.Context, in service.PostInput) (*model.Post, error) {
			got = in
			return &model.Post{ID: "p9", Title: in.Title}, nil
		},
	})

	body := `{"title":"채용","content":"본문","category":"RECRUIT","imageUrl":"/uploads/x.png","published":false}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Title != "채용" || got.Category != "RECRUIT" || got.ImageURL != "/uploads/x.png" {
		t.Errorf("input = %+v", got)
	}
	if got.Published == nil || *got.Published {
		t.Errorf("Published = %v, want explicit false", got.Published)
	}
}

func TestPostHandler_UpdateAndDelete(t *testing.T) {
	var updatedID, deletedID string
	h := NewPostHandler(&mockPostService{
		updateFunc: func(_ context.Context, id string, in service.PostInput) (*model.Post, error) {
			updatedID = id
			if in.Published != nil {
				t.Error("omitted published should stay nil")
			}
			return &model.Post{ID: id, Title: in.Title}, nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	})
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/admin/posts/{id}", h.Update)
	mux.HandleFunc("DELETE /api/admin/posts/{id}", h.Delete)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/posts/p1", strings.NewReader(`{"title":"t","content":"c"}`)))
	if rec.Code != http.StatusOK || updatedID != "p1" {
		t.Errorf("update: code=%d id=%q", rec.Code, updatedID)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/posts/p1", nil))
	if rec.Code != http.StatusOK || deletedID != "p1" {
		t.Errorf("delete: code=%d id=%q", rec.Code, deletedID)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("delete body = %s", rec.Body.String())
	}
}

func TestPostHandler_InternalErrorIsOpaque(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		recentFunc: func(context.Context) ([]*model.Post, error) {
			return nil, errors.New("pq: relation \"posts\" does not exist")
		},
	})
	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/posts/recent", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "relation") {
		t.Errorf("driver error leaked: %s", rec.Body.String())
	}
}
