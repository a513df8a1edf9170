package seed_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
	"task_manager/internal/repository/db"
	"task_manager/internal/seed"
	"task_manager/internal/service"
)

func TestSeeder_Run(t *testing.T) {
	conn, err := db.InitSQLite(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn, db.DriverSQLite)
	services := service.NewService(repos, "seed-secret", time.Hour)
	s := seed.New(repos.Maintenance, services.Authorization, repos.Tasks, nil)
	ctx := context.Background()
	now := time.Now()

	// running twice must not trip the unique email constraint
	if _, err := s.Run(ctx, now); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := s.Run(ctx, now)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Tasks != 18 {
		t.Fatalf("expected 18 tasks, got %d", res.Tasks)
	}

	login, err := services.Login(ctx, seed.DemoEmail, seed.DemoPassword)
	if err != nil {
		t.Fatalf("demo login: %v", err)
	}
	if login.UserID != res.UserID {
		t.Fatalf("login user %q, seeded %q", login.UserID, res.UserID)
	}

	st, err := services.UserStats(ctx, res.UserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalTasks != 18 || st.CompletedTasks != 7 || st.PendingTasks != 11 {
		t.Fatalf("unexpected stats %+v", st)
	}

	days, err := services.Productivity(ctx, res.UserID)
	if err != nil {
		t.Fatalf("productivity: %v", err)
	}
	// the task completed six days ago sits just inside the window
	total := 0
	for _, d := range days {
		total += d.Completed
	}
	if total != 7 {
		t.Fatalf("expected 7 completed tasks in the last week, got %d (%+v)", total, days)
	}

	open, err := services.Tasks.List(ctx, res.UserID, models.TaskFilter{Status: models.StatusInProgress})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(open) != 4 {
		t.Fatalf("expected 4 in-progress tasks, got %d", len(open))
	}
}
