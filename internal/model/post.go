package model

import "time"

// Post categories.
const (
	CategoryNotice  = "NOTICE"
	CategoryRecruit = "RECRUIT"
)

// DefaultAuthor is used when a post is saved without an author.
const DefaultAuthor = "관리자"

// IsCategory reports whether c is a valid post category. The empty string is
// accepted because category is optional.
func IsCategory(c string) bool {
	switch c {
	case "", CategoryNotice, CategoryRecruit:
		return true
	}
	return false
}

// Post is a board entry (notice or recruiting post) managed from the admin panel.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Published bool      `json:"published"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostListOptions carries filter and pagination parameters for listing posts.
type PostListOptions struct {
	Category string
	// IncludeUnpublished returns drafts as well; only the admin listing sets it.
	IncludeUnpublished bool
	Page               int
	Size               int
}
