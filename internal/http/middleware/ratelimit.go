package middleware

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// RouteClass is the rate-limit policy grouping attached at route
// registration. Auth routes always key by client IP, which holds even when a
// client replays a stale session cookie; API routes key by user when one is
// resolved. Exempt routes simply never install the middleware.
type RouteClass string

const (
	RouteClassAuth RouteClass = "auth"
	RouteClassAPI  RouteClass = "api"
)

// RateLimitMW gates requests on a shared sliding counter before business
// logic runs
type RateLimitMW struct {
	store   domain.RateLimitStore
	window  time.Duration
	authMax int
	apiMax  int
}

// NewRateLimitMW creates a new rate limit middleware wrapper
func NewRateLimitMW(store domain.RateLimitStore, window time.Duration, authMax, apiMax int) *RateLimitMW {
	return &RateLimitMW{
		store:   store,
		window:  window,
		authMax: authMax,
		apiMax:  apiMax,
	}
}

// ForClass returns the limiter middleware for one route class
func (mw *RateLimitMW) ForClass(class RouteClass) gin.HandlerFunc {
	max := mw.apiMax
	if class == RouteClassAuth {
		max = mw.authMax
	}

	return func(c *gin.Context) {
		key := mw.key(class, c)

		result, err := mw.store.Touch(c.Request.Context(), key, mw.window)
		if err != nil {
			// Counter store unreachable: let the request through rather than
			// turn a Redis outage into a full outage. Never echo store errors
			// to the client.
			log.Printf("RATE_LIMIT_STORE_FAILED: key=%s error=%v", key, err)
			c.Next()
			return
		}

		remaining := int64(max) - result.Count
		if remaining < 0 {
			remaining = 0
		}
		reset := time.Now().Add(result.Remaining).Unix()

		c.Header("x-ratelimit-limit", fmt.Sprintf("%d", max))
		c.Header("x-ratelimit-remaining", fmt.Sprintf("%d", remaining))
		c.Header("x-ratelimit-reset", fmt.Sprintf("%d", reset))

		if result.Count > int64(max) {
			retryAfter := int64(math.Ceil(result.Remaining.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			if windowSecs := int64(mw.window.Seconds()); retryAfter > windowSecs {
				retryAfter = windowSecs
			}
			c.Header("retry-after", fmt.Sprintf("%d", retryAfter))
			AbortWithError(c, domain.NewRateLimitError("Too many requests, please try again later"))
			return
		}

		c.Next()
	}
}

// key derives the counter key. Distinct identities and distinct IPs never
// share a counter, and each route class keeps its own namespace.
func (mw *RateLimitMW) key(class RouteClass, c *gin.Context) string {
	if class == RouteClassAuth {
		return fmt.Sprintf("auth:ip:%s", c.ClientIP())
	}
	if user, ok := CurrentUser(c); ok {
		return fmt.Sprintf("api:user:%d", user.ID)
	}
	return fmt.Sprintf("api:ip:%s", c.ClientIP())
}
