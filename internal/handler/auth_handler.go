package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/service"
	"github.com/deepinsight/backend/pkg/auth"
)

// AuthHandler handles admin login, logout and the current-admin lookup.
type AuthHandler struct {
	authService service.AuthService
	now         func() time.Time
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     *model.Admin `json:"admin"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(res.ExpiresAt.Sub(h.now()).Seconds()),
		ExpiresAt: res.ExpiresAt,
		Admin:     res.Admin,
	})
}

// Logout handles POST /api/admin/logout. It answers 200 whether or not the
// token was still valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), auth.BearerToken(r)); err != nil {
		slog.Warn("logout: revoke session failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/admin/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	adminID, ok := auth.AdminIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "로그인이 필요합니다.")
		return
	}
	admin, err := h.authService.CurrentAdmin(r.Context(), adminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}
