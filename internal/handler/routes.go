package handler

import (
	"io/fs"
	"net/http"

	"github.com/deepinsight/backend/internal/repository"
	"github.com/deepinsight/backend/internal/service"
	"github.com/deepinsight/backend/internal/storage"
	"github.com/deepinsight/backend/pkg/auth"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps is everything the API routes need.
type Deps struct {
	DB          repository.DB
	Inquiries   service.InquiryService
	Posts       service.PostService
	Auth        service.AuthService
	Sessions    auth.SessionValidator
	Storage     storage.Storage
	UploadDir   string
	FrontendURL string
}

// Routes builds the full HTTP handler including middleware.
func Routes(d Deps) http.Handler {
	h := New(d.DB, d.FrontendURL)
	inquiryHandler := NewInquiryHandler(d.Inquiries)
	postHandler := NewPostHandler(d.Posts)
	authHandler := NewAuthHandler(d.Auth)
	uploadHandler := NewUploadHandler(d.Storage)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// 公開 API
	mux.HandleFunc("POST /api/inquiries", inquiryHandler.Submit)
	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.HandleFunc("GET /api/posts/recent", postHandler.Recent)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.Get)

	// 管理者認証
	mux.HandleFunc("POST /api/admin/login", authHandler.Login)
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)

	requireAdmin := auth.RequireAdmin(d.Sessions)
	admin := func(f http.HandlerFunc) http.Handler { return requireAdmin(f) }
	mux.Handle("GET /api/admin/me", admin(authHandler.Me))
	mux.Handle("GET /api/admin/inquiries", admin(inquiryHandler.AdminList))
	mux.Handle("PUT /api/admin/inquiries/{id}", admin(inquiryHandler.UpdateStatus))
	mux.Handle("GET /api/admin/posts", admin(postHandler.AdminList))
	mux.Handle("POST /api/admin/posts", admin(postHandler.Create))
	mux.Handle("PUT /api/admin/posts/{id}", admin(postHandler.Update))
	mux.Handle("DELETE /api/admin/posts/{id}", admin(postHandler.Delete))
	mux.Handle("POST /api/admin/upload", admin(uploadHandler.Upload))

	if d.UploadDir != "" {
		mux.Handle("GET "+uploadsPrefix+"/", http.StripPrefix(uploadsPrefix, http.FileServer(noDirFS{http.Dir(d.UploadDir)})))
	}

	return chimw.Recoverer(RequestLogger(SecurityHeaders(h.CORS(mux))))
}

// noDirFS hides directory listings under /uploads.
type noDirFS struct {
	root http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.root.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
