package models

// UserStats summarises a user's tasks.
type UserStats struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	PendingTasks   int     `json:"pendingTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// DailyCompleted is one point of the productivity trend.
type DailyCompleted struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Completed int    `json:"completed"`
}
