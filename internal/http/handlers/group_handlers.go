package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

// GroupHandlers serves group resources behind the membership guards
type GroupHandlers struct {
	groupRepo domain.GroupRepository
}

// NewGroupHandlers creates new group handlers
func NewGroupHandlers(groupRepo domain.GroupRepository) *GroupHandlers {
	return &GroupHandlers{groupRepo: groupRepo}
}

// CreateGroupRequest represents group creation request
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddMemberRequest represents a membership addition request
type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Create creates a group and makes the creator its owner
func (h *GroupHandlers) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError(err.Error()))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithError(c, domain.NewUnauthorizedError("Authentication required"))
		return
	}

	group := &domain.Group{Name: req.Name}
	if err := h.groupRepo.Create(c.Request.Context(), group); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	member := &domain.GroupMember{GroupID: group.ID, UserID: user.ID, Role: "owner"}
	if err := h.groupRepo.AddMember(c.Request.Context(), member); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"id":   group.ID,
			"name": group.Name,
		},
	})
}

// AddMember adds a user to a group; the owner-only route guard has already
// run.
func (h *GroupHandlers) AddMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid group id"))
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError(err.Error()))
		return
	}

	member := &domain.GroupMember{GroupID: uint(id), UserID: req.UserID, Role: req.Role}
	if err := h.groupRepo.AddMember(c.Request.Context(), member); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"group_id": member.GroupID,
			"user_id":  member.UserID,
			"role":     member.Role,
		},
	})
}

// Get returns one group; membership is enforced by the route guard
func (h *GroupHandlers) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid group id"))
		return
	}

	group, err := h.groupRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == domain.ErrGroupNotFound {
			middleware.AbortWithError(c, domain.NewNotFoundError("Group", id))
			return
		}
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":   group.ID,
			"name": group.Name,
		},
	})
}
