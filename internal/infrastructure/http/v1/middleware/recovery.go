// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"querykit/internal/core/apperror"
	"querykit/internal/infrastructure/http/v1/dto"
	"querykit/pkg/logger"
)

// Recovery turns a panic into a 500 response. It runs outside ErrorHandler,
// so it writes the body itself. The stack trace is logged and never sent to
// the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error(c.Request.Context(), "panic recovered",
				"error", r,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", r)))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    apperror.CodeInternal,
				Message: "Internal server error",
				Details: map[string]any{"request_id": c.GetString("request_id")},
			})
		}()
		c.Next()
	}
}
