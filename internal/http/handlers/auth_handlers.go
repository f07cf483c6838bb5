package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

// AuthHandlers handles password authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	sessions domain.SessionService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, sessions domain.SessionService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		sessions: sessions,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError(err.Error()))
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if err == domain.ErrUserAlreadyExists {
			middleware.AbortWithError(c, domain.NewConflictError("Email already registered"))
			return
		}
		middleware.AbortWithError(c, err)
		return
	}

	SetSessionCookie(c, h.sessions, result.Session.ID)
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
		},
	})
}

// Login handles user login. Every credential failure maps to the same
// response; the cause is never revealed.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError(err.Error()))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			middleware.AbortWithError(c, domain.NewUnauthorizedError("Invalid credentials"))
			return
		}
		middleware.AbortWithError(c, err)
		return
	}

	SetSessionCookie(c, h.sessions, result.Session.ID)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
		},
	})
}

// Logout handles user logout. Invalidating an unknown or already-invalid
// session succeeds; the client cookie is cleared either way.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if session, ok := middleware.CurrentSession(c); ok {
		if err := h.authSvc.Logout(c.Request.Context(), session.ID); err != nil {
			middleware.AbortWithError(c, err)
			return
		}
	}

	ClearSessionCookie(c, h.sessions)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithError(c, domain.NewUnauthorizedError("Authentication required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"name":   user.Name,
			"role":   user.Role,
			"status": user.Status,
		},
	})
}

// SetSessionCookie writes the session cookie with the configured attributes
func SetSessionCookie(c *gin.Context, sessions domain.SessionService, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessions.CookieName(), sessionID, sessions.CookieMaxAge(), "/", "", sessions.CookieSecure(), true)
}

// ClearSessionCookie expires the session cookie on the client
func ClearSessionCookie(c *gin.Context, sessions domain.SessionService) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessions.CookieName(), "", -1, "/", "", sessions.CookieSecure(), true)
}
