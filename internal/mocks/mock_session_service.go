package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// MockSessionService implements domain.SessionService interface for testing
type MockSessionService struct {
	IssueFunc      func(ctx context.Context, userID uint, loginContext string) (*domain.Session, error)
	ValidateFunc   func(ctx context.Context, sessionID string) (*domain.SessionValidation, error)
	InvalidateFunc func(ctx context.Context, sessionID string) error

	Name   string
	MaxAge int
	Secure bool

	issued int
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{
		Name:   "session_id",
		MaxAge: 3600,
	}
}

// Issue issues a new session
func (m *MockSessionService) Issue(ctx context.Context, userID uint, loginContext string) (*domain.Session, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, loginContext)
	}
	// Default behavior: deterministic distinct ids
	m.issued++
	now := time.Now()
	return &domain.Session{
		ID:             fmt.Sprintf("sess_%d_%d", userID, m.issued),
		UserID:         userID,
		LoginContext:   loginContext,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(time.Hour),
	}, nil
}

// Validate validates a session id
func (m *MockSessionService) Validate(ctx context.Context, sessionID string) (*domain.SessionValidation, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, sessionID)
	}
	// Default behavior: unknown session
	return nil, nil
}

// Invalidate invalidates a session id
func (m *MockSessionService) Invalidate(ctx context.Context, sessionID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// CookieName returns the session cookie name
func (m *MockSessionService) CookieName() string { return m.Name }

// CookieMaxAge returns the session cookie max age in seconds
func (m *MockSessionService) CookieMaxAge() int { return m.MaxAge }

// CookieSecure returns whether the session cookie is secure-only
func (m *MockSessionService) CookieSecure() bool { return m.Secure }

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)
