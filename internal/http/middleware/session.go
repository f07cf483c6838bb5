package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// Context keys set by the session middleware
const (
	ContextUserKey    = "user"
	ContextSessionKey = "session"
	ContextAbilityKey = "ability"
)

// SessionMW resolves the session cookie into a request identity. It never
// aborts: an absent or invalid cookie leaves the request anonymous and
// route-level guards decide later.
type SessionMW struct {
	sessions domain.SessionService
}

// NewSessionMW creates a new session middleware wrapper
func NewSessionMW(sessions domain.SessionService) *SessionMW {
	return &SessionMW{sessions: sessions}
}

// Attach returns the session validation middleware. Cookie side effects
// happen here, before the rate limiter computes its key: a fresh session gets
// its cookie rewritten with the original attributes, an invalid cookie is
// cleared.
func (mw *SessionMW) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(mw.sessions.CookieName())
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		validation, err := mw.sessions.Validate(c.Request.Context(), sessionID)
		if err != nil {
			// Store failure: proceed anonymous rather than block the request
			log.Printf("SESSION_VALIDATE_FAILED: error=%v", err)
			c.Next()
			return
		}

		if validation == nil {
			mw.clearCookie(c)
			c.Next()
			return
		}

		if validation.Fresh {
			mw.writeCookie(c, sessionID)
		}

		c.Set(ContextUserKey, validation.User)
		c.Set(ContextSessionKey, validation.Session)
		c.Next()
	}
}

func (mw *SessionMW) writeCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.sessions.CookieName(), sessionID, mw.sessions.CookieMaxAge(), "/", "", mw.sessions.CookieSecure(), true)
}

func (mw *SessionMW) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.sessions.CookieName(), "", -1, "/", "", mw.sessions.CookieSecure(), true)
}

// CurrentUser returns the authenticated user attached to the request, if any
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// CurrentSession returns the validated session attached to the request, if any
func CurrentSession(c *gin.Context) (*domain.Session, bool) {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	return session, ok && session != nil
}
