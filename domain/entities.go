package domain

import "time"

// User statuses
const (
	UserStatusPending = "pending"
	UserStatusActive  = "active"
)

// Session login contexts, recorded for audit
const (
	LoginContextUnknown   = "unknown"
	LoginContextGoogle    = "oauth_google"
	LoginContextMicrosoft = "oauth_microsoft"
)

// User represents a user account. PasswordHash is empty for accounts that
// only ever authenticated through an OAuth provider.
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string `gorm:"column:password"`
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents a server-side session. A user may hold several
// concurrent sessions; each session belongs to exactly one user.
type Session struct {
	ID             string
	UserID         uint
	LoginContext   string
	CreatedAt      time.Time
	LastActivityAt time.Time
	ExpiresAt      time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User    *User
	Session *Session
}

// OAuthProfile is the provider-neutral profile returned by a provider's
// userinfo endpoint after a successful token exchange.
type OAuthProfile struct {
	Email         string
	Name          string
	EmailVerified bool
}

// Group represents a named collection of users
type Group struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupMember ties a user to a group with a role within that group
type GroupMember struct {
	GroupID uint
	UserID  uint
	Role    string
}

// RateLimitResult is the outcome of one counter touch: the count after
// increment and the time left in the current window.
type RateLimitResult struct {
	Count     int64
	Remaining time.Duration
}

// Ownable is implemented by resources whose permissions depend on ownership
type Ownable interface {
	OwnerID() uint
}

// AbilityRule grants an action on a subject type, optionally narrowed to
// resources owned by the acting user.
type AbilityRule struct {
	Action  string
	Subject string
	OwnOnly bool
}

// Ability is the per-request compiled permission set. It is rebuilt on every
// request and never cached, since role membership can change between requests.
type Ability struct {
	UserID uint
	Rules  []AbilityRule
}

// Can reports whether the ability grants action on subject regardless of any
// concrete resource.
func (a *Ability) Can(action, subject string) bool {
	for _, r := range a.Rules {
		if r.Action == action && r.Subject == subject {
			return true
		}
	}
	return false
}

// CanResource reports whether the ability grants action on a concrete
// resource, honoring own-only rules.
func (a *Ability) CanResource(action, subject string, resource Ownable) bool {
	for _, r := range a.Rules {
		if r.Action != action || r.Subject != subject {
			continue
		}
		if !r.OwnOnly {
			return true
		}
		if resource != nil && resource.OwnerID() == a.UserID {
			return true
		}
	}
	return false
}
