package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/mocks"
)

func newAuthService(userRepo *mocks.MockUserRepository, sessionSvc *mocks.MockSessionService, passwordSvc *mocks.MockPasswordService) domain.AuthService {
	return NewAuthService(userRepo, sessionSvc, passwordSvc)
}

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockSessionService, *mocks.MockPasswordService)
		expectedError error
		validate      func(t *testing.T, result *domain.AuthResult)
	}{
		{
			name: "successful registration",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionSvc *mocks.MockSessionService, passwordSvc *mocks.MockPasswordService) {
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					user.ID = 1
					return nil
				}
			},
			expectedError: nil,
			validate: func(t *testing.T, result *domain.AuthResult) {
				if result.User.Email != "new@example.com" {
					t.Errorf("expected email new@example.com, got %s", result.User.Email)
				}
				if result.User.Status != domain.UserStatusPending {
					t.Errorf("expected pending status, got %s", result.User.Status)
				}
				if result.User.PasswordHash != "hashed_secretpassword" {
					t.Errorf("unexpected password hash %s", result.User.PasswordHash)
				}
				if result.Session.LoginContext != domain.LoginContextUnknown {
					t.Errorf("expected login context %s, got %s", domain.LoginContextUnknown, result.Session.LoginContext)
				}
				if result.Session.UserID != 1 {
					t.Errorf("session bound to user %d", result.Session.UserID)
				}
			},
		},
		{
			name: "email already registered",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionSvc *mocks.MockSessionService, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 5, Email: email}, nil
				}
				passwordSvc.HashFunc = func(password string) (string, error) {
					t.Error("hashing must not run when the email is taken")
					return "", nil
				}
			},
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name: "persistence failure",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionSvc *mocks.MockSessionService, passwordSvc *mocks.MockPasswordService) {
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return errors.New("database error")
				}
			},
			expectedError: errors.New("failed to create user: database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			sessionSvc := mocks.NewMockSessionService()
			passwordSvc := mocks.NewMockPasswordService()
			tt.setupMocks(userRepo, sessionSvc, passwordSvc)

			svc := newAuthService(userRepo, sessionSvc, passwordSvc)
			result, err := svc.Register(context.Background(), "new@example.com", "New User", "secretpassword")

			if tt.expectedError != nil {
				if err == nil || err.Error() != tt.expectedError.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestAuthServiceImpl_Login_UniformFailure(t *testing.T) {
	// Unknown email, OAuth-only account and wrong password must be
	// indistinguishable by error value, and the password verify step must
	// still run in every case.
	tests := []struct {
		name       string
		setupMocks func(*mocks.MockUserRepository, *mocks.MockPasswordService)
	}{
		{
			name: "nonexistent email",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				// Default: FindByEmail returns ErrUserNotFound
			},
		},
		{
			name: "oauth-only account without password hash",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 3, Email: email, PasswordHash: "", Status: domain.UserStatusActive}, nil
				}
			},
		},
		{
			name: "wrong password",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 3, Email: email, PasswordHash: "hashed_other", Status: domain.UserStatusActive}, nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			sessionSvc := mocks.NewMockSessionService()
			passwordSvc := mocks.NewMockPasswordService()
			tt.setupMocks(userRepo, passwordSvc)

			svc := newAuthService(userRepo, sessionSvc, passwordSvc)
			result, err := svc.Login(context.Background(), "someone@example.com", "password123")

			if err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if result != nil {
				t.Error("expected no result on failed login")
			}
			if passwordSvc.VerifyCalls == 0 {
				t.Error("verify step must run on every failure path")
			}
		})
	}
}

func TestAuthServiceImpl_Login_Success(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 9, Email: email, PasswordHash: "hashed_password123", Status: domain.UserStatusActive}, nil
	}
	sessionSvc := mocks.NewMockSessionService()
	passwordSvc := mocks.NewMockPasswordService()

	svc := newAuthService(userRepo, sessionSvc, passwordSvc)
	result, err := svc.Login(context.Background(), "someone@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Session.UserID != 9 {
		t.Errorf("session bound to user %d, want 9", result.Session.UserID)
	}
	if result.Session.LoginContext != domain.LoginContextUnknown {
		t.Errorf("password login must tag sessions %s, got %s", domain.LoginContextUnknown, result.Session.LoginContext)
	}
}

func TestAuthServiceImpl_RegisterThenLoginRoundTrip(t *testing.T) {
	// Registering and then logging in with the same credentials yields
	// sessions on the same user id but with distinct session ids.
	var stored *domain.User
	userRepo := mocks.NewMockUserRepository()
	userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = 11
		clone := *user
		stored = &clone
		return nil
	}
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if stored != nil && stored.Email == email {
			return stored, nil
		}
		return nil, domain.ErrUserNotFound
	}
	sessionSvc := mocks.NewMockSessionService()
	passwordSvc := mocks.NewMockPasswordService()

	svc := newAuthService(userRepo, sessionSvc, passwordSvc)

	regResult, err := svc.Register(context.Background(), "rt@example.com", "RT", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	loginResult, err := svc.Login(context.Background(), "rt@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if regResult.Session.UserID != loginResult.Session.UserID {
		t.Error("sessions must belong to the same user")
	}
	if regResult.Session.ID == loginResult.Session.ID {
		t.Error("each authentication must issue a distinct session id")
	}
}

func TestAuthServiceImpl_LogoutIsIdempotent(t *testing.T) {
	invalidated := map[string]bool{}
	sessionSvc := mocks.NewMockSessionService()
	sessionSvc.InvalidateFunc = func(ctx context.Context, sessionID string) error {
		// Deleting an unknown key succeeds, mirroring the Redis store
		invalidated[sessionID] = true
		return nil
	}

	svc := newAuthService(mocks.NewMockUserRepository(), sessionSvc, mocks.NewMockPasswordService())

	if err := svc.Logout(context.Background(), "sess_1"); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), "sess_1"); err != nil {
		t.Fatalf("second logout of the same session failed: %v", err)
	}
	if !invalidated["sess_1"] {
		t.Error("session was never invalidated")
	}
}
