package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Task totals for the caller
// @Tags         stats
// @Produce      json
// @Success      200  {object}  models.UserStats
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /stats/user [get]
// @Security     BearerAuth
func (h *Handler) userStats(c *gin.Context) {
	userID := currentUserID(c)
	st, err := h.services.Stats.UserStats(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "stats_user_failed", "userId", userID)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Completed tasks per day over the last week
// @Tags         stats
// @Produce      json
// @Success      200  {array}   models.DailyCompleted
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /stats/productivity [get]
// @Security     BearerAuth
func (h *Handler) productivity(c *gin.Context) {
	userID := currentUserID(c)
	days, err := h.services.Stats.Productivity(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "stats_productivity_failed", "userId", userID)
		return
	}
	c.JSON(http.StatusOK, days)
}
