// Package seed resets the store to a demo account with a week of history.
package seed

import (
	"context"
	"fmt"
	"time"

	"task_manager/internal/logger"
	"task_manager/internal/models"
	"task_manager/internal/repository"
	"task_manager/internal/service"
)

const day = 24 * time.Hour

// Seeder wipes all data and inserts the demo account and its tasks.
type Seeder struct {
	maint repository.Maintenance
	auth  service.Authorization
	tasks repository.TaskRepo
	log   *logger.Logger
}

func New(maint repository.Maintenance, auth service.Authorization, tasks repository.TaskRepo, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{maint: maint, auth: auth, tasks: tasks, log: log}
}

// Result summarizes a seeding run.
type Result struct {
	UserID string
	Tasks  int
}

// Run deletes every user and task, then creates the demo data relative to now.
// Tasks are written through the store directly so createdAt can lie in the past.
func (s *Seeder) Run(ctx context.Context, now time.Time) (Result, error) {
	if err := s.maint.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("clear data: %w", err)
	}
	s.log.Infow("existing data destroyed")

	userID, err := s.auth.Register(ctx, DemoUsername, DemoEmail, DemoPassword)
	if err != nil {
		return Result{}, fmt.Errorf("create demo user: %w", err)
	}
	s.log.Infow("user created", "email", DemoEmail)

	now = now.UTC()
	for _, st := range sampleTasks {
		due := now.Add(time.Duration(st.dueInDays) * day)
		t := models.Task{
			Title:       st.title,
			Description: st.description,
			Priority:    st.priority,
			Status:      st.status,
			DueDate:     &due,
			CreatedAt:   now.Add(-time.Duration(st.createdDaysAgo) * day),
			UserID:      userID,
		}
		if err := s.tasks.Create(ctx, &t); err != nil {
			return Result{}, fmt.Errorf("insert %q: %w", st.title, err)
		}
	}
	s.log.Infow("sample tasks imported", "count", len(sampleTasks))

	return Result{UserID: userID, Tasks: len(sampleTasks)}, nil
}
