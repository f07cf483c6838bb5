package app

import (
	"context"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/internal/config"
	httpx "github.com/ryandt33/raptscallions-sub011/internal/http"
	"github.com/ryandt33/raptscallions-sub011/internal/http/handlers"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Handlers
	authH := handlers.NewAuthHandlers(c.AuthSvc, c.SessionSvc)
	oauthH := handlers.NewOAuthHandlers(c.UserRepo, c.SessionSvc, cfg.OAuthTimeout)
	userH := handlers.NewUserHandlers(c.UserRepo)
	groupH := handlers.NewGroupHandlers(c.GroupRepo)

	// Middleware
	sessionMW := middleware.NewSessionMW(c.SessionSvc)
	rateMW := middleware.NewRateLimitMW(c.RateLimitStore, cfg.RateLimitWindow, cfg.RateLimitAuth, cfg.RateLimitAPI)
	permMW := middleware.NewPermissionMW(c.AbilitySvc, c.GroupRepo)

	r := httpx.BuildRouter(authH, oauthH, userH, groupH, sessionMW, rateMW, permMW, c.GoogleProvider, c.MicrosoftProvider)

	if err := seedDefaultPolicies(c.Casbin.E); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedDefaultPolicies installs the baseline role rules on an empty policy
// table so a fresh deployment is usable without manual setup.
func seedDefaultPolicies(e *casbin.Enforcer) error {
	policies, err := e.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}

	defaults := [][]string{
		{"role_admin", "read", "user", "any"},
		{"role_admin", "update", "user", "any"},
		{"role_admin", "read", "group", "any"},
		{"role_user", "read", "user", "own"},
		{"role_user", "create", "group", "any"},
		{"group_owner", "update", "group", "own"},
	}
	for _, p := range defaults {
		if _, err := e.AddPolicy(p[0], p[1], p[2], p[3]); err != nil {
			return err
		}
	}
	if err := e.SavePolicy(); err != nil {
		return err
	}
	log.Println("casbin: seeded default policies")
	return nil
}
