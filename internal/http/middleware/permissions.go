package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// PermissionMW builds route guards over the ability service and group
// repository. Guards are plain factories returning gin handlers, composed
// explicitly at route registration.
type PermissionMW struct {
	abilities domain.AbilityService
	groups    domain.GroupRepository
}

// NewPermissionMW creates a new permission middleware wrapper
func NewPermissionMW(abilities domain.AbilityService, groups domain.GroupRepository) *PermissionMW {
	return &PermissionMW{
		abilities: abilities,
		groups:    groups,
	}
}

// RequirePermission compiles the request identity's ability and fails closed
// when it does not grant action on subject. The compiled ability is stored on
// the context for handlers that need a later resource-level check.
func (mw *PermissionMW) RequirePermission(action, subject string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortWithError(c, domain.NewUnauthorizedError("Authentication required"))
			return
		}

		ability, err := mw.abilities.BuildAbility(c.Request.Context(), user)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if !ability.Can(action, subject) {
			AbortWithError(c, domain.NewForbiddenError(fmt.Sprintf("Cannot %s %s", action, subject)))
			return
		}

		c.Set(ContextAbilityKey, ability)
		c.Next()
	}
}

// RequireRole is a coarse identity-only guard; it does not compile the
// ability set.
func (mw *PermissionMW) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortWithError(c, domain.NewUnauthorizedError("Authentication required"))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, domain.NewForbiddenError("Insufficient role"))
	}
}

// RequireGroupMembership guards routes carrying a group id path parameter
func (mw *PermissionMW) RequireGroupMembership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		mw.requireMembership(c, param, nil)
	}
}

// RequireGroupRole guards group routes that additionally need one of the
// given roles within the group.
func (mw *PermissionMW) RequireGroupRole(param string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		mw.requireMembership(c, param, roles)
	}
}

func (mw *PermissionMW) requireMembership(c *gin.Context, param string, roles []string) {
	user, ok := CurrentUser(c)
	if !ok {
		AbortWithError(c, domain.NewUnauthorizedError("Authentication required"))
		return
	}

	groupID, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		AbortWithError(c, domain.NewValidationError("Invalid group id"))
		return
	}

	member, err := mw.groups.FindMembership(c.Request.Context(), uint(groupID), user.ID)
	if err != nil {
		if err == domain.ErrGroupNotFound {
			AbortWithError(c, domain.NewForbiddenError("Not a member of this group"))
			return
		}
		AbortWithError(c, err)
		return
	}

	if len(roles) > 0 {
		for _, role := range roles {
			if member.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, domain.NewForbiddenError("Insufficient group role"))
		return
	}

	c.Next()
}

// CurrentAbility returns the ability compiled by RequirePermission, if any
func CurrentAbility(c *gin.Context) (*domain.Ability, bool) {
	v, exists := c.Get(ContextAbilityKey)
	if !exists {
		return nil, false
	}
	ability, ok := v.(*domain.Ability)
	return ability, ok && ability != nil
}

// CheckResourcePermission is the imperative check for permissions that
// depend on a concrete loaded resource, such as ownership.
func CheckResourcePermission(ability *domain.Ability, action, subject string, resource domain.Ownable) error {
	if ability == nil || !ability.CanResource(action, subject, resource) {
		return domain.NewForbiddenError(fmt.Sprintf("Cannot %s this %s", action, subject))
	}
	return nil
}
