package mocks

import (
	"context"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// MockAbilityService implements domain.AbilityService interface for testing
type MockAbilityService struct {
	BuildAbilityFunc func(ctx context.Context, user *domain.User) (*domain.Ability, error)
}

// NewMockAbilityService creates a new MockAbilityService with default behaviors
func NewMockAbilityService() *MockAbilityService {
	return &MockAbilityService{}
}

// BuildAbility compiles the ability for a user
func (m *MockAbilityService) BuildAbility(ctx context.Context, user *domain.User) (*domain.Ability, error) {
	if m.BuildAbilityFunc != nil {
		return m.BuildAbilityFunc(ctx, user)
	}
	// Default behavior: empty ability
	if user == nil {
		return &domain.Ability{}, nil
	}
	return &domain.Ability{UserID: user.ID}, nil
}

// Compile-time interface compliance verification
var _ domain.AbilityService = (*MockAbilityService)(nil)
