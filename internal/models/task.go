package models

import "time"

// Priority values as stored. Ordering by priority compares these strings.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UserID      string     `json:"userId"`
}

// Sort keys accepted by the list endpoint.
const (
	SortByCreatedAt = "createdAt"
	SortByDate      = "date"
	SortByPriority  = "priority"
)

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Status   Status
	Priority Priority
	SortBy   string

	// CreatedSince is used by the stats queries only.
	CreatedSince time.Time
}

// TaskPatch carries the fields of a partial update. Empty fields are left untouched.
type TaskPatch struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
}

// Apply copies every non-empty field of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != "" {
		t.Title = p.Title
	}
	if p.Description != "" {
		t.Description = p.Description
	}
	if p.Priority != "" {
		t.Priority = p.Priority
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.DueDate != nil && !p.DueDate.IsZero() {
		d := *p.DueDate
		t.DueDate = &d
	}
}
