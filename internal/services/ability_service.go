package services

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// AbilityServiceImpl implements domain.AbilityService backed by a Casbin
// enforcer whose policy rows are (role, action, subject, scope).
type AbilityServiceImpl struct {
	groupRepo domain.GroupRepository
	enforcer  *casbin.Enforcer
}

// NewAbilityService creates a new ability service
func NewAbilityService(groupRepo domain.GroupRepository, enforcer *casbin.Enforcer) domain.AbilityService {
	return &AbilityServiceImpl{
		groupRepo: groupRepo,
		enforcer:  enforcer,
	}
}

// BuildAbility implements domain.AbilityService. The ability is compiled from
// the user's global role plus the roles of every current group membership,
// on every call; results are never reused across requests.
func (s *AbilityServiceImpl) BuildAbility(ctx context.Context, user *domain.User) (*domain.Ability, error) {
	if user == nil {
		return &domain.Ability{}, nil
	}

	roles := []string{"role_" + user.Role}

	memberships, err := s.groupRepo.ListMemberships(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group memberships: %w", err)
	}
	seen := map[string]bool{roles[0]: true}
	for _, m := range memberships {
		role := "group_" + m.Role
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}

	ability := &domain.Ability{UserID: user.ID}
	for _, role := range roles {
		rows, err := s.enforcer.GetFilteredPolicy(0, role)
		if err != nil {
			return nil, fmt.Errorf("failed to load policies for %s: %w", role, err)
		}
		for _, row := range rows {
			if len(row) < 3 {
				continue
			}
			rule := domain.AbilityRule{
				Action:  row[1],
				Subject: row[2],
			}
			if len(row) > 3 && row[3] == "own" {
				rule.OwnOnly = true
			}
			ability.Rules = append(ability.Rules, rule)
		}
	}

	return ability, nil
}
