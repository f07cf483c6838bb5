package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// AbortWithError records err on the context and stops the handler chain; the
// boundary responder turns it into the uniform JSON error body.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorResponder is the single boundary that converts thrown errors into the
// uniform body {"error", "code", "details"?}. Anything not recognized as an
// AppError is logged with full detail server-side and reaches the client as
// a generic 500 with no internal text.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := domain.AsAppError(err)
		if !ok {
			log.Printf("UNHANDLED_ERROR: method=%s path=%s error=%v", c.Request.Method, c.Request.URL.Path, err)
			appErr = domain.NewInternalError("Internal server error")
		}

		body := gin.H{"error": appErr.Message, "code": appErr.Code}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.Status, body)
	}
}

// NotFoundHandler renders unmatched routes through the same taxonomy
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"code":  domain.CodeNotFound,
		})
	}
}
