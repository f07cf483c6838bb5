package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

// Handshake cookies carry the CSRF state and PKCE verifier across the round
// trip to the provider. Their validity window is that round trip.
const (
	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_verifier"
	handshakeTTLSeconds = 600
)

const dashboardPath = "/dashboard"

// OAuthHandlers drives the federated login flows. Both providers share the
// same state machine; only scopes, endpoints and email resolution differ,
// and those live in the provider adapters.
type OAuthHandlers struct {
	userRepo domain.UserRepository
	sessions domain.SessionService
	timeout  time.Duration
}

// NewOAuthHandlers creates new OAuth flow handlers
func NewOAuthHandlers(userRepo domain.UserRepository, sessions domain.SessionService, timeout time.Duration) *OAuthHandlers {
	return &OAuthHandlers{
		userRepo: userRepo,
		sessions: sessions,
		timeout:  timeout,
	}
}

// Entry returns the handler for GET /auth/{provider}: it issues the CSRF
// state and PKCE verifier, sets both handshake cookies and redirects to the
// provider's authorization URL. The configuration check runs before any
// state is generated.
func (h *OAuthHandlers) Entry(provider domain.OAuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !provider.Configured() {
			middleware.AbortWithError(c, domain.NewOAuthNotConfiguredError(provider.Name()))
			return
		}

		state, err := generateState()
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		verifier := oauth2.GenerateVerifier()

		h.setHandshakeCookie(c, oauthStateCookie, state)
		h.setHandshakeCookie(c, oauthVerifierCookie, verifier)

		c.Redirect(http.StatusFound, provider.AuthCodeURL(state, verifier))
	}
}

// Callback returns the handler for GET /auth/{provider}/callback. Check
// order is fixed: provider error first, then state (before the code is ever
// used, since a replayed code without matching state is a CSRF attempt),
// then code presence. Both handshake cookies are cleared once the code is
// consumed, success or failure.
func (h *OAuthHandlers) Callback(provider domain.OAuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if providerErr := c.Query("error"); providerErr != "" {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Authentication was denied by the provider"))
			return
		}

		state := c.Query("state")
		stateCookie, err := c.Cookie(oauthStateCookie)
		if state == "" || err != nil || state != stateCookie {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Invalid state parameter"))
			return
		}

		code := c.Query("code")
		if code == "" {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Missing authorization code"))
			return
		}

		verifier, err := c.Cookie(oauthVerifierCookie)
		if err != nil || verifier == "" {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Missing code verifier"))
			return
		}

		// The code is about to be consumed; the handshake is single-use
		h.clearHandshakeCookies(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		accessToken, err := provider.Exchange(ctx, code, verifier)
		if err != nil {
			middleware.AbortWithError(c, domain.NewOAuthProviderError("Failed to exchange authorization code"))
			return
		}

		profile, err := provider.FetchProfile(ctx, accessToken)
		if err != nil {
			middleware.AbortWithError(c, domain.NewOAuthProviderError("Failed to fetch user profile"))
			return
		}

		if !profile.EmailVerified {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Email not verified with Google"))
			return
		}
		if profile.Email == "" {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("no email address found"))
			return
		}

		user, err := h.findOrCreateUser(c.Request.Context(), provider.Name(), profile)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		session, err := h.sessions.Issue(c.Request.Context(), user.ID, "oauth_"+provider.Name())
		if err != nil {
			middleware.AbortWithError(c, fmt.Errorf("failed to issue session: %w", err))
			return
		}

		SetSessionCookie(c, h.sessions, session.ID)
		c.Redirect(http.StatusFound, dashboardPath)
	}
}

// findOrCreateUser resolves the profile email to a local account. An
// existing account is linked, not duplicated; linking is audit-logged since
// a local or other-provider account is now reachable via this identity.
func (h *OAuthHandlers) findOrCreateUser(ctx context.Context, providerName string, profile *domain.OAuthProfile) (*domain.User, error) {
	user, err := h.userRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		log.Printf("OAUTH_ACCOUNT_LINKED: provider=%s user_id=%d email=%s", providerName, user.ID, user.Email)
		return user, nil
	}
	if err != domain.ErrUserNotFound {
		return nil, err
	}

	user = &domain.User{
		Email:  profile.Email,
		Name:   profile.Name,
		Role:   "user",
		Status: domain.UserStatusActive,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("OAUTH_USER_CREATED: provider=%s user_id=%d email=%s", providerName, user.ID, user.Email)
	return user, nil
}

func (h *OAuthHandlers) setHandshakeCookie(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, handshakeTTLSeconds, "/", "", h.sessions.CookieSecure(), true)
}

func (h *OAuthHandlers) clearHandshakeCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.sessions.CookieSecure(), true)
	c.SetCookie(oauthVerifierCookie, "", -1, "/", "", h.sessions.CookieSecure(), true)
}

// generateState produces an unguessable CSRF state value: 32 random bytes,
// base64url-encoded.
func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
