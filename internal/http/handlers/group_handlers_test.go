package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
	"github.com/ryandt33/raptscallions-sub011/internal/mocks"
)

func setupGroupRouter(groupRepo *mocks.MockGroupRepository, identity *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGroupHandlers(groupRepo)

	r := gin.New()
	r.Use(middleware.ErrorResponder())
	if identity != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserKey, identity)
			c.Next()
		})
	}
	r.POST("/groups", h.Create)
	r.GET("/groups/:id", h.Get)
	r.POST("/groups/:id/members", h.AddMember)
	return r
}

func TestGroupHandlers_CreateMakesCreatorOwner(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	groupRepo.CreateFunc = func(ctx context.Context, group *domain.Group) error {
		group.ID = 5
		return nil
	}
	var added *domain.GroupMember
	groupRepo.AddMemberFunc = func(ctx context.Context, member *domain.GroupMember) error {
		added = member
		return nil
	}
	router := setupGroupRouter(groupRepo, &domain.User{ID: 7, Role: "user"})

	w := postJSON(router, "/groups", `{"name":"Band"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if added == nil {
		t.Fatal("expected creator membership")
	}
	if added.GroupID != 5 || added.UserID != 7 || added.Role != "owner" {
		t.Errorf("expected owner membership for creator, got %+v", added)
	}
}

func TestGroupHandlers_CreateValidation(t *testing.T) {
	router := setupGroupRouter(mocks.NewMockGroupRepository(), &domain.User{ID: 7})

	w := postJSON(router, "/groups", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), domain.CodeValidation) {
		t.Errorf("expected validation code, got %s", w.Body.String())
	}
}

func TestGroupHandlers_Get(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	groupRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Group, error) {
		if id == 5 {
			return &domain.Group{ID: 5, Name: "Band"}, nil
		}
		return nil, domain.ErrGroupNotFound
	}
	router := setupGroupRouter(groupRepo, &domain.User{ID: 7})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/groups/5", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Band") {
		t.Errorf("expected group in body, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/groups/99", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGroupHandlers_AddMember(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	var added *domain.GroupMember
	groupRepo.AddMemberFunc = func(ctx context.Context, member *domain.GroupMember) error {
		added = member
		return nil
	}
	router := setupGroupRouter(groupRepo, &domain.User{ID: 7})

	w := postJSON(router, "/groups/5/members", `{"user_id":9,"role":"member"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if added == nil || added.GroupID != 5 || added.UserID != 9 || added.Role != "member" {
		t.Errorf("unexpected membership %+v", added)
	}
}
