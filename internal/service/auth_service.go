package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *model.Admin
}

// AuthService は管理者認証に関するビジネスロジックのインターフェース
type AuthService interface {
	// Login returns ErrInvalidCredentials for an unknown email and for a wrong
	// password alike.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout revokes the session behind token. It is idempotent.
	Logout(ctx context.Context, token string) error
	CurrentAdmin(ctx context.Context, adminID string) (*model.Admin, error)
	// EnsureAdmin creates or updates the admin account with the given email.
	// Changing the password of an existing admin revokes all of its sessions.
	EnsureAdmin(ctx context.Context, email, password, name string) (*model.Admin, error)
}

type authServiceImpl struct {
	admins   repository.AdminRepository
	sessions *SessionService
	cost     int
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService は authServiceImpl を生成する
func NewAuthService(admins repository.AdminRepository, sessions *SessionService) AuthService {
	return newAuthService(admins, sessions, bcrypt.DefaultCost)
}

func newAuthService(admins repository.AdminRepository, sessions *SessionService, cost int) *authServiceImpl {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("deepinsight-dummy-password"), cost)
	return &authServiceImpl{admins: admins, sessions: sessions, cost: cost, dummyHash: dummy}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		slog.Info("admin login failed", "reason", "unknown_email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		slog.Info("admin login failed", "reason", "password_mismatch", "admin_id", admin.ID)
		return nil, ErrInvalidCredentials
	}

	token, session, err := s.sessions.CreateSession(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("admin logged in", "admin_id", admin.ID)
	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, Admin: admin}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

func (s *authServiceImpl) CurrentAdmin(ctx context.Context, adminID string) (*model.Admin, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	return admin, err
}

func (s *authServiceImpl) EnsureAdmin(ctx context.Context, email, password, name string) (*model.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email", "admin email is required")
	}
	if len(password) < 8 {
		return nil, invalid("password", "admin password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = model.DefaultAuthor
	}
	existing, err := s.admins.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	admin := &model.Admin{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.admins.Upsert(ctx, admin); err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}
	// パスワード変更時は既存セッションを全て失効させる
	if existing != nil && bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
		if err := s.sessions.DeleteAllSessions(ctx, admin.ID); err != nil {
			return nil, fmt.Errorf("revoke admin sessions: %w", err)
		}
		slog.Info("admin password changed, sessions revoked", "admin_id", admin.ID)
	}
	slog.Info("admin account ensured", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}
