package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/repository"
	"github.com/deepinsight/backend/pkg/auth"
	"github.com/google/uuid"
)

// DefaultSessionTTL is the lifetime of an admin session.
const DefaultSessionTTL = 24 * time.Hour

// SessionService manages DB-backed admin sessions referenced by signed tokens.
// Implements auth.SessionValidator.
type SessionService struct {
	repo   repository.SessionRepository
	signer *auth.Signer
	ttl    time.Duration
	now    func() time.Time
}

var _ auth.SessionValidator = (*SessionService)(nil)

// NewSessionService creates a SessionService. A non-positive ttl selects DefaultSessionTTL.
func NewSessionService(repo repository.SessionRepository, signer *auth.Signer, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{repo: repo, signer: signer, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// CreateSession stores a new session and returns the bearer token for it.
func (s *SessionService) CreateSession(ctx context.Context, adminID string) (string, *model.Session, error) {
	now := s.now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	token, err := s.signer.Sign(session.ID, adminID, session.ExpiresAt)
	if err != nil {
		_ = s.repo.DeleteByID(ctx, session.ID)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	slog.Debug("session created", "admin_id", adminID, "expires_at", session.ExpiresAt)
	return token, session, nil
}

// ValidateToken verifies the token and its session row and returns the admin ID.
// Expired rows are removed as they are found.
func (s *SessionService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return "", ErrInvalidSession
	}

	session, err := s.repo.FindByID(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("find session: %w", err)
	}
	if session.AdminID != claims.AdminID {
		return "", ErrInvalidSession
	}
	if session.Expired(s.now()) {
		slog.Debug("session expired", "admin_id", session.AdminID)
		_ = s.repo.DeleteByID(ctx, session.ID)
		return "", ErrInvalidSession
	}
	return session.AdminID, nil
}

// DeleteSession removes the session behind token (logout). Unknown or
// unverifiable tokens are ignored.
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	return s.repo.DeleteByID(ctx, claims.SessionID)
}

// DeleteAllSessions removes all sessions of an admin (forced logout).
func (s *SessionService) DeleteAllSessions(ctx context.Context, adminID string) error {
	return s.repo.DeleteByAdminID(ctx, adminID)
}

// SweepExpired deletes every expired session row.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC())
}
