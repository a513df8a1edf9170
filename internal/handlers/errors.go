package handlers

import (
	"errors"
	"net/http"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

const msgServerError = "Server error"

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Message string `json:"message" example:"Task not found"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message" example:"Task deleted"`
}

// writeError maps a service error onto a status code and a client-safe message.
// Unexpected errors are logged under logKey and returned as 500 with their detail.
func (h *Handler) writeError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Message: ve.Message})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, errorResponse{Message: service.ErrUserExists.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, errorResponse{Message: service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Message: service.ErrMissingToken.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Message: service.ErrInvalidToken.Error()})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: service.ErrTaskNotFound.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, logKey, err, kv...)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	resp := errorResponse{Message: msgServerError}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(httpCode, resp)
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}
