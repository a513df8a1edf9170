package handlers

import (
	"fmt"
	"net/http"
	"time"

	"task_manager/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// TaskRequest is the body of create and update calls. Ownership is never taken
// from the body.
type TaskRequest struct {
	Title       string          `json:"title" example:"Write report"`
	Description string          `json:"description,omitempty" example:"Quarterly numbers"`
	Priority    models.Priority `json:"priority,omitempty" example:"High" enums:"Low,Medium,High"`
	Status      models.Status   `json:"status,omitempty" example:"Todo" enums:"Todo,In Progress,Completed"`
	// RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'
	DueDate string `json:"dueDate,omitempty" example:"2025-08-31"`
}

func (r TaskRequest) toPatch() (models.TaskPatch, error) {
	p := models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
	}
	if r.DueDate != "" {
		due, err := parseQueryTime(r.DueDate)
		if err != nil {
			return models.TaskPatch{}, err
		}
		p.DueDate = &due
	}
	return p, nil
}

// bindTask binds the body and converts it, writing a 400 on failure.
func (h *Handler) bindTask(c *gin.Context) (models.TaskPatch, bool) {
	var input TaskRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return models.TaskPatch{}, false
	}
	p, err := input.toPatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid dueDate; use RFC3339 or YYYY-MM-DD"})
		return models.TaskPatch{}, false
	}
	return p, true
}

// @Summary      List tasks
// @Description  Returns the caller's tasks. Default order is newest first.
// @Tags         tasks
// @Produce      json
// @Param        status    query     string  false  "Status filter"    Enums(Todo,In Progress,Completed)
// @Param        priority  query     string  false  "Priority filter"  Enums(Low,Medium,High)
// @Param        sortBy    query     string  false  "Ordering"         Enums(createdAt,date,priority)
// @Success      200       {array}   models.Task
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /tasks [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	userID := currentUserID(c)
	f := models.TaskFilter{
		Status:   models.Status(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
		SortBy:   c.Query("sortBy"),
	}

	tasks, err := h.services.Tasks.List(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, err, "tasks_list_failed", "userId", userID)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        input  body      TaskRequest  true  "task fields; title is required"
// @Success      201    {object}  models.Task
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /tasks [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	p, ok := h.bindTask(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	task, err := h.services.Tasks.Create(c.Request.Context(), userID, p)
	if err != nil {
		h.writeError(c, err, "tasks_create_failed", "userId", userID)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      Update a task
// @Description  Only non-empty fields are applied; empty values keep the stored value.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id     path      string       true  "Task id"
// @Param        input  body      TaskRequest  true  "fields to change"
// @Success      200    {object}  models.Task
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /tasks/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	p, ok := h.bindTask(c)
	if !ok {
		return
	}

	userID, id := currentUserID(c), c.Param("id")
	task, err := h.services.Tasks.Update(c.Request.Context(), userID, id, p)
	if err != nil {
		h.writeError(c, err, "tasks_update_failed", "userId", userID, "id", id)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	userID, id := currentUserID(c), c.Param("id")
	if err := h.services.Tasks.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, "tasks_delete_failed", "userId", userID, "id", id)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
