package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
	"task_manager/internal/repository/db"
)

func newSQLiteRepo(t *testing.T) *repository.Repository {
	t.Helper()
	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewRepository(conn, db.DriverSQLite)
}

func mustUser(t *testing.T, repo *repository.Repository, email string) string {
	t.Helper()
	id, err := repo.Auth.Create(context.Background(), "user", email, "hash")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return id
}

func TestSQLite_DuplicateEmailRejected(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	firstID := mustUser(t, repo, "dup@example.com")

	_, err := repo.Auth.Create(ctx, "other", "dup@example.com", "hash2")
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	u, err := repo.Auth.GetByEmail(ctx, "dup@example.com")
	if err != nil || u == nil {
		t.Fatalf("GetByEmail: %+v, %v", u, err)
	}
	if u.ID != firstID || u.PasswordHash != "hash" {
		t.Fatalf("first user must be unaffected, got %+v", u)
	}
}

func TestSQLite_TasksAreOwnerScoped(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	alice := mustUser(t, repo, "alice@example.com")
	bob := mustUser(t, repo, "bob@example.com")

	task := &models.Task{UserID: alice, Title: "alice's", Priority: models.PriorityLow, Status: models.StatusTodo}
	if err := repo.Tasks.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	bobs, err := repo.Tasks.List(ctx, bob, models.TaskFilter{})
	if err != nil || len(bobs) != 0 {
		t.Fatalf("bob should see nothing, got %v, %v", bobs, err)
	}
	if got, err := repo.Tasks.Get(ctx, bob, task.ID); err != nil || got != nil {
		t.Fatalf("bob Get: expected (nil, nil), got %+v, %v", got, err)
	}

	stolen := *task
	stolen.UserID = bob
	stolen.Title = "hijacked"
	if err := repo.Tasks.Update(ctx, stolen); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("bob Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Tasks.Delete(ctx, bob, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("bob Delete: expected ErrNotFound, got %v", err)
	}

	got, err := repo.Tasks.Get(ctx, alice, task.ID)
	if err != nil || got == nil || got.Title != "alice's" {
		t.Fatalf("alice's task changed: %+v, %v", got, err)
	}
}

func TestSQLite_ListSortingAndFilters(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	uid := mustUser(t, repo, "sort@example.com")

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	due1 := base.Add(72 * time.Hour)
	due2 := base.Add(24 * time.Hour)
	seed := []models.Task{
		{Title: "low", Priority: models.PriorityLow, Status: models.StatusTodo, CreatedAt: base, DueDate: &due1},
		{Title: "high", Priority: models.PriorityHigh, Status: models.StatusCompleted, CreatedAt: base.Add(time.Hour), DueDate: &due2},
		{Title: "medium", Priority: models.PriorityMedium, Status: models.StatusTodo, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		seed[i].UserID = uid
		if err := repo.Tasks.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create %s: %v", seed[i].Title, err)
		}
	}

	titles := func(ts []models.Task) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.Title
		}
		return out
	}
	check := func(name string, f models.TaskFilter, want ...string) {
		t.Helper()
		got, err := repo.Tasks.List(ctx, uid, f)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if g := titles(got); !equal(g, want) {
			t.Fatalf("%s: got %v, want %v", name, g, want)
		}
	}

	check("default newest first", models.TaskFilter{}, "medium", "high", "low")
	check("priority is lexical", models.TaskFilter{SortBy: "priority"}, "high", "low", "medium")
	// SQLite orders NULL first in ascending order
	check("due date ascending", models.TaskFilter{SortBy: "date"}, "medium", "high", "low")
	check("status filter", models.TaskFilter{Status: models.StatusTodo}, "medium", "low")
	check("combined filter", models.TaskFilter{Status: models.StatusTodo, Priority: models.PriorityLow}, "low")
	check("created since", models.TaskFilter{CreatedSince: base.Add(30 * time.Minute)}, "medium", "high")

	n, err := repo.Tasks.Count(ctx, uid, models.StatusCompleted)
	if err != nil || n != 1 {
		t.Fatalf("Count completed: %d, %v", n, err)
	}
}

func TestSQLite_DeleteAll(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	uid := mustUser(t, repo, "wipe@example.com")
	if err := repo.Tasks.Create(ctx, &models.Task{UserID: uid, Title: "x", Priority: "Medium", Status: "Todo"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Maintenance.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if u, _ := repo.Auth.GetByEmail(ctx, "wipe@example.com"); u != nil {
		t.Fatalf("user survived wipe")
	}
	if n, _ := repo.Tasks.Count(ctx, uid, ""); n != 0 {
		t.Fatalf("tasks survived wipe: %d", n)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
