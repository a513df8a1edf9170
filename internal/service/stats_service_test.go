package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task_manager/internal/models"
)

func seedStatsTask(repo *memTaskRepo, userID string, status models.Status, createdAt time.Time) {
	t := models.Task{Title: "t", Status: status, Priority: models.PriorityLow, UserID: userID, CreatedAt: createdAt}
	_ = repo.Create(context.Background(), &t)
}

func TestStatsService_UserStats(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewStatsService(repo)

	seedStatsTask(repo, "u1", models.StatusCompleted, fixedNow)
	seedStatsTask(repo, "u1", models.StatusTodo, fixedNow)
	seedStatsTask(repo, "u1", models.StatusInProgress, fixedNow)
	seedStatsTask(repo, "u2", models.StatusCompleted, fixedNow)

	st, err := svc.UserStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	want := models.UserStats{TotalTasks: 3, CompletedTasks: 1, PendingTasks: 2, CompletionRate: 33.33}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}
}

func TestStatsService_UserStats_NoTasks(t *testing.T) {
	svc := NewStatsService(newMemTaskRepo())

	st, err := svc.UserStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if st.CompletionRate != 0 || st.TotalTasks != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestStatsService_Productivity(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewStatsService(repo)
	svc.now = func() time.Time { return fixedNow }

	day := 24 * time.Hour
	seedStatsTask(repo, "u1", models.StatusCompleted, fixedNow.Add(-1*day))
	seedStatsTask(repo, "u1", models.StatusCompleted, fixedNow.Add(-1*day+time.Hour))
	seedStatsTask(repo, "u1", models.StatusCompleted, fixedNow.Add(-3*day))
	seedStatsTask(repo, "u1", models.StatusCompleted, fixedNow.Add(-10*day)) // outside window
	seedStatsTask(repo, "u1", models.StatusTodo, fixedNow.Add(-1*day))
	seedStatsTask(repo, "u2", models.StatusCompleted, fixedNow.Add(-1*day))

	got, err := svc.Productivity(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Productivity: %v", err)
	}
	want := []models.DailyCompleted{
		{Date: "2024-05-07", Completed: 1},
		{Date: "2024-05-09", Completed: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if repo.lastFilter.Status != models.StatusCompleted || !repo.lastFilter.CreatedSince.Equal(fixedNow.Add(-7*day)) {
		t.Fatalf("unexpected filter %+v", repo.lastFilter)
	}
}

func TestStatsService_Productivity_RepoError(t *testing.T) {
	repo := newMemTaskRepo()
	repo.listErr = errors.New("boom")
	svc := NewStatsService(repo)

	if _, err := svc.Productivity(context.Background(), "u1"); err == nil {
		t.Fatalf("expected error")
	}
}
