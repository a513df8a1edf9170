package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/models"

	"github.com/google/uuid"
)

type TaskSQL struct {
	db      *sql.DB
	dialect string
}

func NewTaskRepository(db *sql.DB, dialect string) *TaskSQL {
	return &TaskSQL{db: db, dialect: dialect}
}

var _ TaskRepo = (*TaskSQL)(nil)

const (
	taskColumns = `id, user_id, title, description, priority, status, due_date, created_at`

	insertTaskSQL = `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectTaskSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	updateTaskSQL = `UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, due_date = ? WHERE id = ? AND user_id = ?`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	countTasksSQL = `SELECT COUNT(*) FROM tasks WHERE user_id = ?`

	orderCreatedDesc = " ORDER BY created_at DESC"
	orderDueAsc      = " ORDER BY due_date ASC"
	orderPriorityAsc = " ORDER BY priority ASC"
)

// orderClause maps the sortBy query value onto SQL. Priority sorts by the stored
// string, so High < Low < Medium.
func orderClause(sortBy string) string {
	switch sortBy {
	case models.SortByDate:
		return orderDueAsc
	case models.SortByPriority:
		return orderPriorityAsc
	default:
		return orderCreatedDesc
	}
}

func nullTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}

// Create inserts t. Missing ID and CreatedAt are generated.
func (r *TaskSQL) Create(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	} else {
		t.CreatedAt = t.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, rebind(r.dialect, insertTaskSQL),
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		nullTime(t.DueDate),
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task for user %s: %w", t.UserID, err)
	}
	return nil
}

// List returns the user's tasks filtered by status/priority/creation time and ordered per f.SortBy.
func (r *TaskSQL) List(ctx context.Context, userID string, f models.TaskFilter) ([]models.Task, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Priority != "" {
		conds = append(conds, "priority = ?")
		args = append(args, string(f.Priority))
	}
	if !f.CreatedSince.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.CreatedSince.UTC())
	}

	q := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conds, " AND ") + orderClause(f.SortBy)

	rows, err := r.db.QueryContext(ctx, rebind(r.dialect, q), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks for user %s: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one task owned by userID. Returns (nil, nil) if absent or owned by someone else.
func (r *TaskSQL) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, rebind(r.dialect, selectTaskSQL), id, userID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %s: %w", id, err)
	}
	return &t, nil
}

// Update overwrites the mutable columns of t. ID, owner and createdAt never change.
func (r *TaskSQL) Update(ctx context.Context, t models.Task) error {
	res, err := r.db.ExecContext(ctx, rebind(r.dialect, updateTaskSQL),
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		nullTime(t.DueDate),
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return expectOneRow(res, t.ID)
}

func (r *TaskSQL) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, rebind(r.dialect, deleteTaskSQL), id, userID)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return expectOneRow(res, id)
}

// Count returns the number of tasks owned by userID, optionally only those with status.
func (r *TaskSQL) Count(ctx context.Context, userID string, status models.Status) (int, error) {
	q := countTasksSQL
	args := []any{userID}
	if status != "" {
		q += " AND status = ?"
		args = append(args, string(status))
	}

	var n int
	if err := r.db.QueryRowContext(ctx, rebind(r.dialect, q), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks for user %s: %w", userID, err)
	}
	return n, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for task %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (models.Task, error) {
	var (
		t        models.Task
		priority string
		status   string
		due      sql.NullTime
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &priority, &status, &due, &t.CreatedAt); err != nil {
		return models.Task{}, err
	}
	t.Priority = models.Priority(priority)
	t.Status = models.Status(status)
	t.CreatedAt = t.CreatedAt.UTC()
	if due.Valid {
		d := due.Time.UTC()
		t.DueDate = &d
	}
	return t, nil
}
