package handler

import (
	"net/http"

	"github.com/deepinsight/backend/internal/repository"
	"github.com/go-chi/cors"
)

// Handler serves the endpoints that need no service: health and CORS.
type Handler struct {
	db   repository.DB
	cors func(http.Handler) http.Handler
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{
		db: db,
		cors: cors.Handler(cors.Options{
			AllowedOrigins:   []string{frontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return h.cors(next)
}
