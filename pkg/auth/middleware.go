package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const (
	adminIDKey contextKey = "admin_id"
	tokenKey   contextKey = "token"
)

// SessionValidator resolves a bearer token to the admin it belongs to.
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (adminID string, err error)
}

// AdminIDFromContext は context から adminID を取得する
func AdminIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminIDKey).(string)
	return v, ok
}

// WithAdminID は context に adminID をセットする
func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// TokenFromContext returns the bearer token RequireAdmin accepted.
func TokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// BearerToken extracts the token of an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAdmin は認証必須ミドルウェア。トークンを検証し、adminID を context にセットする
func RequireAdmin(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "unauthorized", "로그인이 필요합니다.")
				return
			}

			adminID, err := v.ValidateToken(r.Context(), token)
			if errors.Is(err, ErrInvalidToken) {
				unauthorized(w, "invalid_session", "세션이 만료되었습니다. 다시 로그인해 주세요.")
				return
			}
			if err != nil {
				// ストア障害ではセッションを失効させない
				slog.Error("validate session failed", "path", r.URL.Path, "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal_error", "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.")
				return
			}

			ctx := WithAdminID(r.Context(), adminID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, code, message string) {
	writeJSONError(w, http.StatusUnauthorized, code, message)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
