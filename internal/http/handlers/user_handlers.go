package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

// UserHandlers serves user resources behind the permission guards
type UserHandlers struct {
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

// ownedUser adapts a user record for ownership checks: a user owns their own
// record.
type ownedUser struct{ *domain.User }

func (o ownedUser) OwnerID() uint { return o.ID }

// Get returns one user. The route guard grants "read user" broadly; whether
// this concrete record is readable can depend on ownership, so the
// resource-level check runs after the fetch.
func (h *UserHandlers) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid user id"))
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == domain.ErrUserNotFound {
			middleware.AbortWithError(c, domain.NewNotFoundError("User", id))
			return
		}
		middleware.AbortWithError(c, err)
		return
	}

	ability, _ := middleware.CurrentAbility(c)
	if err := middleware.CheckResourcePermission(ability, "read", "user", ownedUser{user}); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"name":   user.Name,
			"status": user.Status,
		},
	})
}
