// Package console holds the headless view models of the admin console and the
// public site: the session guard, paged lists, post detail, the inquiry form
// and the admin panel. They talk to the server only through Backend.
package console

import (
	"context"
	"io"

	"github.com/deepinsight/backend/pkg/client"
)

// Backend is the adapter surface the view models use. *client.Client
// implements it.
type Backend interface {
	AuthBackend
	InquirySubmitter

	FetchPosts(ctx context.Context, req client.PageRequest) (*client.Page[client.Post], error)
	FetchPostByID(ctx context.Context, id string) (*client.Post, error)
	FetchInquiries(ctx context.Context, s *client.Session, req client.InquiryPageRequest) (*client.Page[client.Inquiry], error)
	UpdateInquiryStatus(ctx context.Context, s *client.Session, id, status string) (*client.Inquiry, error)
	FetchAllPosts(ctx context.Context, s *client.Session, req client.PageRequest) (*client.Page[client.Post], error)
	CreatePost(ctx context.Context, s *client.Session, in client.PostInput) (*client.Post, error)
	UpdatePost(ctx context.Context, s *client.Session, id string, in client.PostInput) (*client.Post, error)
	DeletePost(ctx context.Context, s *client.Session, id string) error
	UploadImage(ctx context.Context, s *client.Session, filename string, r io.Reader) (*client.UploadedImage, error)
}

// AuthBackend is what Guard needs.
type AuthBackend interface {
	AdminLogin(ctx context.Context, cred client.Credentials) (*client.Session, error)
	AdminLogout(ctx context.Context, s *client.Session) error
	CurrentUser(ctx context.Context) *client.Session
}

// InquirySubmitter is what InquiryForm needs.
type InquirySubmitter interface {
	SubmitInquiry(ctx context.Context, in client.InquiryInput) (*client.Inquiry, error)
}

var _ Backend = (*client.Client)(nil)
