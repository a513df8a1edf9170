package repository

import (
	"context"
	"database/sql"
	"errors"

	"task_manager/internal/models"
)

var (
	// ErrNotFound is returned when an owner-scoped row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

// Authorization is the credential store.
type Authorization interface {
	Create(ctx context.Context, username, email, passwordHash string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskRepo is the task store. Every method is scoped to the owning user.
type TaskRepo interface {
	Create(ctx context.Context, t *models.Task) error
	List(ctx context.Context, userID string, f models.TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, userID, id string) (*models.Task, error)
	Update(ctx context.Context, t models.Task) error
	Delete(ctx context.Context, userID, id string) error
	Count(ctx context.Context, userID string, status models.Status) (int, error)
}

// Maintenance holds destructive operations used by the seeder only.
type Maintenance interface {
	DeleteAll(ctx context.Context) error
}

// Pinger reports store reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Repository struct {
	Auth        Authorization
	Tasks       TaskRepo
	Maintenance Maintenance
	Pinger      Pinger
}

// NewRepository builds the SQL-backed stores. dialect is "sqlite" or "postgres".
func NewRepository(db *sql.DB, dialect string) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db, dialect),
		Tasks:       NewTaskRepository(db, dialect),
		Maintenance: NewMaintenanceRepository(db),
		Pinger:      db,
	}
}
