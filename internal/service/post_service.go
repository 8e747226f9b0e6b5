package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
)

const maxTitleLength = 200

// PostInput is the editable part of a post.
type PostInput struct {
	Title    string
	Content  string
	Author   string
	Category string
	ImageURL string
	// Published keeps the current value when nil; new posts default to true.
	Published *bool
}

// PostService defines the business logic for board posts.
type PostService interface {
	List(ctx context.Context, opts model.PostListOptions) (model.Page[*model.Post], error)
	Recent(ctx context.Context) ([]*model.Post, error)
	// Get returns a published post and counts the view. Drafts are not found.
	Get(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, in PostInput) (*model.Post, error)
	Update(ctx context.Context, id string, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, id string) error
}

type postServiceImpl struct {
	repo repository.PostRepository
	now  func() time.Time
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(repo repository.PostRepository) PostService {
	return &postServiceImpl{repo: repo, now: time.Now}
}

func (s *postServiceImpl) List(ctx context.Context, opts model.PostListOptions) (model.Page[*model.Post], error) {
	page, size, err := normalizePage(opts.Page, opts.Size, DefaultPostPageSize)
	if err != nil {
		return model.Page[*model.Post]{}, err
	}
	if !model.IsCategory(opts.Category) {
		return model.Page[*model.Post]{}, invalid("category", "알 수 없는 카테고리입니다.")
	}
	opts.Page, opts.Size = page, size

	posts, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return model.Page[*model.Post]{}, err
	}
	return model.NewPage(posts, total, page, size), nil
}

func (s *postServiceImpl) Recent(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Recent(ctx, RecentPostLimit)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

func (s *postServiceImpl) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, repository.ErrNotFound
	}
	// Best effort: a failed increment must not hide the post.
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		slog.Warn("increment post views failed", "post_id", id, "error", err)
	} else {
		post.Views++
	}
	return post, nil
}

func (s *postServiceImpl) Create(ctx context.Context, in PostInput) (*model.Post, error) {
	now := s.now().UTC()
	post := &model.Post{Published: true, CreatedAt: now, UpdatedAt: now}
	if err := applyPostInput(post, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	slog.Info("post created", "post_id", post.ID, "category", post.Category)
	return post, nil
}

func (s *postServiceImpl) Update(ctx context.Context, id string, in PostInput) (*model.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPostInput(post, in); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	slog.Info("post updated", "post_id", post.ID)
	return post, nil
}

func (s *postServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("post deleted", "post_id", id)
	return nil
}

func applyPostInput(post *model.Post, in PostInput) error {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	author := strings.TrimSpace(in.Author)
	category := strings.ToUpper(strings.TrimSpace(in.Category))

	if title == "" {
		return invalid("title", "제목을 입력해 주세요.")
	}
	if len([]rune(title)) > maxTitleLength {
		return invalid("title", "제목이 너무 깁니다.")
	}
	if content == "" {
		return invalid("content", "내용을 입력해 주세요.")
	}
	if !model.IsCategory(category) {
		return invalid("category", "카테고리는 NOTICE 또는 RECRUIT 이어야 합니다.")
	}
	if author == "" {
		author = model.DefaultAuthor
	}

	post.Title = title
	post.Content = content
	post.Author = author
	post.Category = category
	post.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Published != nil {
		post.Published = *in.Published
	}
	return nil
}
