package repositories

import (
	"context"
	"testing"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

func TestGroupRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := NewGroupRepository(setupTestDB(t))

	group := &domain.Group{Name: "Band"}
	if err := repo.Create(context.Background(), group); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if group.ID == 0 {
		t.Fatal("expected assigned id")
	}

	found, err := repo.FindByID(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Name != "Band" {
		t.Errorf("unexpected group %+v", found)
	}

	if _, err := repo.FindByID(context.Background(), 999); err != domain.ErrGroupNotFound {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGroupRepositoryImpl_Memberships(t *testing.T) {
	repo := NewGroupRepository(setupTestDB(t))

	band := &domain.Group{Name: "Band"}
	crew := &domain.Group{Name: "Crew"}
	for _, g := range []*domain.Group{band, crew} {
		if err := repo.Create(context.Background(), g); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	memberships := []domain.GroupMember{
		{GroupID: band.ID, UserID: 7, Role: "owner"},
		{GroupID: crew.ID, UserID: 7, Role: "member"},
		{GroupID: band.ID, UserID: 8, Role: "member"},
	}
	for i := range memberships {
		if err := repo.AddMember(context.Background(), &memberships[i]); err != nil {
			t.Fatalf("add member failed: %v", err)
		}
	}

	member, err := repo.FindMembership(context.Background(), band.ID, 7)
	if err != nil {
		t.Fatalf("find membership failed: %v", err)
	}
	if member.Role != "owner" {
		t.Errorf("expected owner, got %s", member.Role)
	}

	if _, err := repo.FindMembership(context.Background(), crew.ID, 8); err != domain.ErrGroupNotFound {
		t.Errorf("expected ErrGroupNotFound for non-member, got %v", err)
	}

	list, err := repo.ListMemberships(context.Background(), 7)
	if err != nil {
		t.Fatalf("list memberships failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 memberships, got %d", len(list))
	}
}

func TestGroupRepositoryImpl_DuplicateMembershipRejected(t *testing.T) {
	repo := NewGroupRepository(setupTestDB(t))

	group := &domain.Group{Name: "Band"}
	if err := repo.Create(context.Background(), group); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	member := &domain.GroupMember{GroupID: group.ID, UserID: 7, Role: "member"}
	if err := repo.AddMember(context.Background(), member); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if err := repo.AddMember(context.Background(), member); err == nil {
		t.Error("expected composite key violation")
	}
}
