package rest

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/gin-gonic/gin"
)

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if c.Writer.Status() >= 400 {
			l.Info(c.Request.Context(), "request failed", append(args, "error", c.Errors.String())...)
			return
		}
		l.Debug(c.Request.Context(), "request processed", args...)
	}
}

func timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerAuth verifies "Authorization: Bearer <token>" and stores the proven
// principal in the request context.
func (h *handler) bearerAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		h.abort(c, "auth", common.ErrorUnauthenticated)
		return
	}

	principal, err := h.verifier.Verify(strings.TrimSpace(token))
	if err != nil {
		h.abort(c, "auth", err)
		return
	}

	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
	c.Next()
}
