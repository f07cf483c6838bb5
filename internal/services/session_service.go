package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// SessionConfig carries session lifetime and cookie attributes
type SessionConfig struct {
	CookieName       string
	TTL              time.Duration
	RefreshThreshold time.Duration
	Secure           bool
}

// SessionServiceImpl implements domain.SessionService using Redis persistence
type SessionServiceImpl struct {
	userRepo    domain.UserRepository
	redisClient *redis.Client
	config      SessionConfig
	prefix      string
}

// NewSessionService creates a new Redis-based session service
func NewSessionService(userRepo domain.UserRepository, redisClient *redis.Client, config SessionConfig) domain.SessionService {
	return &SessionServiceImpl{
		userRepo:    userRepo,
		redisClient: redisClient,
		config:      config,
		prefix:      "session:",
	}
}

// Issue implements domain.SessionService
func (s *SessionServiceImpl) Issue(ctx context.Context, userID uint, loginContext string) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		LoginContext:   loginContext,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.config.TTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.prefix+session.ID, data, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Validate implements domain.SessionService. An unknown or expired id yields
// (nil, nil): the caller treats missing identity as a valid state. When the
// remaining lifetime drops under the refresh threshold the session is
// extended in place and reported fresh so the cookie gets rewritten.
func (s *SessionServiceImpl) Validate(ctx context.Context, sessionID string) (*domain.SessionValidation, error) {
	key := s.prefix + sessionID

	data, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Orphaned session, owning user is gone
			s.redisClient.Del(ctx, key)
			return nil, nil
		}
		return nil, err
	}

	ttl, err := s.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session TTL: %w", err)
	}

	fresh := ttl > 0 && ttl < s.config.RefreshThreshold
	if fresh {
		now := time.Now()
		session.LastActivityAt = now
		session.ExpiresAt = now.Add(s.config.TTL)
		refreshed, err := json.Marshal(&session)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := s.redisClient.Set(ctx, key, refreshed, s.config.TTL).Err(); err != nil {
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
	}

	return &domain.SessionValidation{
		User:    user,
		Session: &session,
		Fresh:   fresh,
	}, nil
}

// Invalidate implements domain.SessionService. Deleting an unknown or
// already-deleted session is a no-op success.
func (s *SessionServiceImpl) Invalidate(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, s.prefix+sessionID).Err()
}

// CookieName implements domain.SessionService
func (s *SessionServiceImpl) CookieName() string { return s.config.CookieName }

// CookieMaxAge implements domain.SessionService
func (s *SessionServiceImpl) CookieMaxAge() int { return int(s.config.TTL.Seconds()) }

// CookieSecure implements domain.SessionService
func (s *SessionServiceImpl) CookieSecure() bool { return s.config.Secure }
