package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// GroupRepositoryImpl implements domain.GroupRepository using GORM
type GroupRepositoryImpl struct {
	db *gorm.DB
}

// DBGroup represents the database model for Group
type DBGroup struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBGroup) TableName() string {
	return "groups"
}

// DBGroupMember represents one user's membership in one group
type DBGroupMember struct {
	GroupID   uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint   `gorm:"primaryKey;autoIncrement:false;index"`
	Role      string `gorm:"size:64"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBGroupMember) TableName() string {
	return "group_members"
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) domain.GroupRepository {
	return &GroupRepositoryImpl{db: db}
}

// Create implements domain.GroupRepository
func (r *GroupRepositoryImpl) Create(ctx context.Context, group *domain.Group) error {
	dbGroup := &DBGroup{Name: group.Name}
	if err := r.db.WithContext(ctx).Create(dbGroup).Error; err != nil {
		return err
	}
	group.ID = dbGroup.ID
	group.CreatedAt = dbGroup.CreatedAt
	group.UpdatedAt = dbGroup.UpdatedAt
	return nil
}

// FindByID implements domain.GroupRepository
func (r *GroupRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Group, error) {
	var dbGroup DBGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbGroup).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &domain.Group{
		ID:        dbGroup.ID,
		Name:      dbGroup.Name,
		CreatedAt: dbGroup.CreatedAt,
		UpdatedAt: dbGroup.UpdatedAt,
	}, nil
}

// AddMember implements domain.GroupRepository
func (r *GroupRepositoryImpl) AddMember(ctx context.Context, member *domain.GroupMember) error {
	dbMember := &DBGroupMember{
		GroupID: member.GroupID,
		UserID:  member.UserID,
		Role:    member.Role,
	}
	return r.db.WithContext(ctx).Create(dbMember).Error
}

// FindMembership implements domain.GroupRepository
func (r *GroupRepositoryImpl) FindMembership(ctx context.Context, groupID, userID uint) (*domain.GroupMember, error) {
	var dbMember DBGroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&dbMember).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &domain.GroupMember{
		GroupID: dbMember.GroupID,
		UserID:  dbMember.UserID,
		Role:    dbMember.Role,
	}, nil
}

// ListMemberships implements domain.GroupRepository
func (r *GroupRepositoryImpl) ListMemberships(ctx context.Context, userID uint) ([]domain.GroupMember, error) {
	var dbMembers []DBGroupMember
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&dbMembers).Error
	if err != nil {
		return nil, err
	}

	members := make([]domain.GroupMember, 0, len(dbMembers))
	for _, m := range dbMembers {
		members = append(members, domain.GroupMember{
			GroupID: m.GroupID,
			UserID:  m.UserID,
			Role:    m.Role,
		})
	}
	return members, nil
}
