package services

import (
	"context"
	"fmt"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// dummyPasswordHash is a bcrypt hash of a throwaway value. Login runs a
// verification against it when no real hash is available so that the
// response time does not reveal whether the account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionSvc  domain.SessionService
	passwordSvc domain.PasswordService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionSvc domain.SessionService,
	passwordSvc domain.PasswordService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionSvc:  sessionSvc,
		passwordSvc: passwordSvc,
	}
}

// Register implements domain.AuthService. The conflict check runs before
// hashing so a duplicate email costs no bcrypt work.
func (s *AuthServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.AuthResult, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         "user",
		Status:       domain.UserStatusPending,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.sessionSvc.Issue(ctx, user.ID, domain.LoginContextUnknown)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &domain.AuthResult{User: user, Session: session}, nil
}

// Login implements domain.AuthService. Unknown email, an OAuth-only account,
// and a wrong password all fail with the same ErrInvalidCredentials; the
// dummy verification keeps the three paths close in timing.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.passwordSvc.Verify(dummyPasswordHash, password)
		return nil, domain.ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		s.passwordSvc.Verify(dummyPasswordHash, password)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessionSvc.Issue(ctx, user.ID, domain.LoginContextUnknown)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &domain.AuthResult{User: user, Session: session}, nil
}

// Logout implements domain.AuthService. Logging out an already-invalid or
// unknown session id succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionSvc.Invalidate(ctx, sessionID)
}
