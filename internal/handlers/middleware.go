package handlers

import (
	"strings"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	userIDKey           = "userId"
)

// tokenFromHeader accepts "Bearer <token>" or a bare token.
func tokenFromHeader(header string) string {
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	return strings.TrimSpace(header)
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		h.writeError(c, service.ErrMissingToken, "auth_missing_token")
		c.Abort()
		return
	}

	userId, err := h.services.ParseToken(tokenFromHeader(header))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		// an empty token after the scheme is still a present-but-invalid credential
		h.writeError(c, service.ErrInvalidToken, "auth_invalid_token")
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// currentUserID returns the id stored by userIdMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
