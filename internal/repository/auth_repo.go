package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"task_manager/internal/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	db      *sql.DB
	dialect string
}

func NewUserRepository(db *sql.DB, dialect string) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`
)

// Create inserts a new user and returns its ID.
// A second row with the same email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, rebind(r.dialect, insertUserSQL),
		id, username, email, passwordHash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert user %q: %w", email, ErrDuplicate)
		}
		return "", fmt.Errorf("insert user %q: %w", email, err)
	}
	return id, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, rebind(r.dialect, selectUserByEmailSQL), email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
