package handler

import (
	"net/http"
	"strings"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/service"
)

// PostHandler serves the public board and the admin post management endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a PostHandler with the given service.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// postRequest is the JSON body for creating or updating a post.
type postRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	ImageURL  string `json:"imageUrl"`
	Published *bool  `json:"published"`
}

func (p postRequest) input() service.PostInput {
	return service.PostInput{
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		Published: p.Published,
	}
}

// List handles GET /api/posts?page&size&category.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminList handles GET /api/admin/posts; drafts are included.
func (h *PostHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, includeUnpublished bool) {
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}
	result, err := h.postService.List(r.Context(), model.PostListOptions{
		Category:           strings.ToUpper(r.URL.Query().Get("category")),
		IncludeUnpublished: includeUnpublished,
		Page:               page,
		Size:               size,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Recent handles GET /api/posts/recent.
func (h *PostHandler) Recent(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.Recent(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/admin/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	post, err := h.postService.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/admin/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	post, err := h.postService.Update(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/admin/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.postService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
