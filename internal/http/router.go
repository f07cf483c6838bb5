package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/http/handlers"
	"github.com/ryandt33/raptscallions-sub011/internal/http/middleware"
)

// BuildRouter wires the middleware chain and routes. Order matters: the
// error responder wraps everything, the session validator runs before the
// rate limiter so identity-keyed counters see the resolved user, and route
// classes are explicit per group rather than inferred from the path.
func BuildRouter(
	ah *handlers.AuthHandlers,
	oh *handlers.OAuthHandlers,
	uh *handlers.UserHandlers,
	gh *handlers.GroupHandlers,
	sessionMW *middleware.SessionMW,
	rateMW *middleware.RateLimitMW,
	permMW *middleware.PermissionMW,
	google domain.OAuthProvider,
	microsoft domain.OAuthProvider,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ErrorResponder(), sessionMW.Attach())
	r.NoRoute(middleware.NotFoundHandler())

	// Liveness endpoints are fully exempt: no counter, no headers
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/live", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth").Use(rateMW.ForClass(middleware.RouteClassAuth))
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.GET("/google", oh.Entry(google))
	auth.GET("/google/callback", oh.Callback(google))
	auth.GET("/microsoft", oh.Entry(microsoft))
	auth.GET("/microsoft/callback", oh.Callback(microsoft))

	api := r.Group("/").Use(rateMW.ForClass(middleware.RouteClassAPI))
	api.POST("/auth/logout", ah.Logout)
	api.GET("/auth/me", ah.Me)
	api.GET("/users/:id", permMW.RequirePermission("read", "user"), uh.Get)
	api.POST("/groups", permMW.RequirePermission("create", "group"), gh.Create)
	api.GET("/groups/:id", permMW.RequireGroupMembership("id"), gh.Get)
	api.POST("/groups/:id/members", permMW.RequireGroupRole("id", "owner"), gh.AddMember)

	return r
}
