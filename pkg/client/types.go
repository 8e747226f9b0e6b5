package client

import "time"

// Inquiry statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Statuses lists every inquiry status in workflow order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// IsStatus reports whether s is a valid inquiry status.
func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Post categories.
const (
	CategoryNotice  = "NOTICE"
	CategoryRecruit = "RECRUIT"
)

// DefaultAuthor is the author the server assigns to posts saved without one.
const DefaultAuthor = "관리자"

// Inquiry is the canonical inquiry shape.
type Inquiry struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Email        string    `json:"email" yaml:"email"`
	Company      string    `json:"company,omitempty" yaml:"company,omitempty"`
	Phone        string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Message      string    `json:"message" yaml:"message"`
	ServiceTypes []string  `json:"serviceType" yaml:"serviceType"`
	Status       string    `json:"status" yaml:"status"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"` // zero when the store omitted it
}

// Post is the canonical post shape.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Author    string    `json:"author" yaml:"author"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Published bool      `json:"published" yaml:"published"`
	Views     int       `json:"views" yaml:"views"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Admin is the signed-in operator.
type Admin struct {
	ID    string `json:"id" yaml:"id"`
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
}

// Session is the proof of an admin login. Privileged calls take it explicitly.
type Session struct {
	Token     string    `json:"token" yaml:"-"`
	ExpiresAt time.Time `json:"expiresAt" yaml:"expiresAt"`
	Admin     Admin     `json:"admin" yaml:"admin"`
}

// Expired reports whether the session is past its expiry at now. A session
// without an expiry never expires locally.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Page is one page of a listing.
type Page[T any] struct {
	Content       []T `json:"content" yaml:"content"`
	TotalElements int `json:"totalElements" yaml:"totalElements"`
	TotalPages    int `json:"totalPages" yaml:"totalPages"`
	Size          int `json:"size" yaml:"size"`
	Number        int `json:"number" yaml:"number"`
}

// InquiryInput is the public inquiry form.
type InquiryInput struct {
	Name         string
	Email        string
	Company      string
	Phone        string
	Message      string
	ServiceTypes []string
	// Status is sent as-is; the server always stores new inquiries as pending.
	Status string
}

// PageRequest selects one page of posts. Page is zero-origin.
type PageRequest struct {
	Page     int
	Size     int
	Category string
}

// InquiryPageRequest selects one page of inquiries.
type InquiryPageRequest struct {
	Page   int
	Size   int
	Status string // "" or "all" for every status
}

// Credentials are the admin login form.
type Credentials struct {
	Email    string
	Password string
}

// PostInput is the admin post form. A nil Published keeps the stored value on
// update and defaults to true on create.
type PostInput struct {
	Title     string
	Content   string
	Author    string
	Category  string
	ImageURL  string
	Published *bool
}

// UploadedImage is the public location of an uploaded image.
type UploadedImage struct {
	URL string `json:"url" yaml:"url"`
}
