package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// GroupRepository defines group and membership data access operations
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	FindByID(ctx context.Context, id uint) (*Group, error)
	AddMember(ctx context.Context, member *GroupMember) error
	FindMembership(ctx context.Context, groupID, userID uint) (*GroupMember, error)
	ListMemberships(ctx context.Context, userID uint) ([]GroupMember, error)
}

// SessionValidation is the result of validating a session id against the
// store. Fresh is true when the session is nearing its reissue threshold and
// the cookie should be rewritten.
type SessionValidation struct {
	User    *User
	Session *Session
	Fresh   bool
}

// SessionService is the narrow session handle injected into the session
// middleware and the OAuth controller. Validate returns (nil, nil) for an
// unknown or expired id: absence of identity is a valid state, not an error.
type SessionService interface {
	Issue(ctx context.Context, userID uint, loginContext string) (*Session, error)
	Validate(ctx context.Context, sessionID string) (*SessionValidation, error)
	Invalidate(ctx context.Context, sessionID string) error
	CookieName() string
	CookieMaxAge() int
	CookieSecure() bool
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// RateLimitStore is the shared counter store behind the rate limiter. Touch
// atomically increments the counter for key, initializing it with a TTL of
// window on first touch, and returns the count and the remaining window.
// The store is cross-process shared truth; no in-process caching.
type RateLimitStore interface {
	Touch(ctx context.Context, key string, window time.Duration) (*RateLimitResult, error)
}

// AbilityService compiles the per-request Ability from the user's global role
// and group memberships
type AbilityService interface {
	BuildAbility(ctx context.Context, user *User) (*Ability, error)
}

// OAuthProvider abstracts one federated identity provider. AuthCodeURL
// derives the S256 challenge from the verifier; Exchange redeems an
// authorization code together with that verifier; FetchProfile calls the
// provider's userinfo endpoint with the resulting access token.
type OAuthProvider interface {
	Name() string
	Configured() bool
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*OAuthProfile, error)
}
