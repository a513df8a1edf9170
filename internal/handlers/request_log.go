package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs HTTP request/response metadata.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.With(
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	).Infow("http_request",
		"status", c.Writer.Status(),
		"latency", time.Since(start).String(),
	)
}

// corsMiddleware allows the listed origins, or any origin when the list contains "*".
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if _, ok := set[origin]; ok || allowAll {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
