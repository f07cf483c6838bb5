package mocks

import (
	"context"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// MockGroupRepository implements domain.GroupRepository interface for testing
type MockGroupRepository struct {
	CreateFunc          func(ctx context.Context, group *domain.Group) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Group, error)
	AddMemberFunc       func(ctx context.Context, member *domain.GroupMember) error
	FindMembershipFunc  func(ctx context.Context, groupID, userID uint) (*domain.GroupMember, error)
	ListMembershipsFunc func(ctx context.Context, userID uint) ([]domain.GroupMember, error)
}

// NewMockGroupRepository creates a new MockGroupRepository with default behaviors
func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{}
}

// Create creates a new group
func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, group)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a group by ID
func (m *MockGroupRepository) FindByID(ctx context.Context, id uint) (*domain.Group, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrGroupNotFound
}

// AddMember adds a member to a group
func (m *MockGroupRepository) AddMember(ctx context.Context, member *domain.GroupMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	// Default behavior: success
	return nil
}

// FindMembership finds one user's membership in one group
func (m *MockGroupRepository) FindMembership(ctx context.Context, groupID, userID uint) (*domain.GroupMember, error) {
	if m.FindMembershipFunc != nil {
		return m.FindMembershipFunc(ctx, groupID, userID)
	}
	// Default behavior: not a member
	return nil, domain.ErrGroupNotFound
}

// ListMemberships lists all memberships for a user
func (m *MockGroupRepository) ListMemberships(ctx context.Context, userID uint) ([]domain.GroupMember, error) {
	if m.ListMembershipsFunc != nil {
		return m.ListMembershipsFunc(ctx, userID)
	}
	// Default behavior: no memberships
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.GroupRepository = (*MockGroupRepository)(nil)
