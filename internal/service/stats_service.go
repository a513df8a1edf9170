package service

import (
	"context"
	"math"
	"sort"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

const (
	productivityWindow = 7 * 24 * time.Hour
	dayLayout          = "2006-01-02"
)

// StatsService is a read-only view over a user's tasks.
type StatsService struct {
	taskRepo repository.TaskRepo
	now      func() time.Time
}

func NewStatsService(taskRepo repository.TaskRepo) *StatsService {
	return &StatsService{taskRepo: taskRepo, now: time.Now}
}

// UserStats returns task totals for userID. CompletionRate is a percentage
// rounded to two decimals.
func (s *StatsService) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	total, err := s.taskRepo.Count(ctx, userID, "")
	if err != nil {
		return models.UserStats{}, err
	}
	completed, err := s.taskRepo.Count(ctx, userID, models.StatusCompleted)
	if err != nil {
		return models.UserStats{}, err
	}

	st := models.UserStats{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
	}
	if total > 0 {
		st.CompletionRate = math.Round(float64(completed)/float64(total)*10000) / 100
	}
	return st, nil
}

// Productivity counts completed tasks per creation day over the last seven days,
// oldest day first. Days without completed tasks are omitted.
func (s *StatsService) Productivity(ctx context.Context, userID string) ([]models.DailyCompleted, error) {
	tasks, err := s.taskRepo.List(ctx, userID, models.TaskFilter{
		Status:       models.StatusCompleted,
		CreatedSince: s.now().UTC().Add(-productivityWindow),
	})
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int)
	for _, t := range tasks {
		perDay[t.CreatedAt.UTC().Format(dayLayout)]++
	}

	out := make([]models.DailyCompleted, 0, len(perDay))
	for day, n := range perDay {
		out = append(out, models.DailyCompleted{Date: day, Completed: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
