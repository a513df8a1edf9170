// auth_repo_test.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"task_manager/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T, dialect string) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db, dialect)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		dialect        string
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        bool
		errContainsStr string
	}{
		{
			name:    "success",
			dialect: "sqlite",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "h123", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:    "postgres placeholders",
			dialect: "postgres",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4, $5)`)).
					WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "h123", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:    "exec error",
			dialect: "sqlite",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t, tt.dialect)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), "alice", "alice@example.com", "h123")

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != "" {
					t.Fatalf("expected empty id on error, got %q", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(id) != 36 {
				t.Fatalf("expected uuid id, got %q", id)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		email          string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		wantErr        bool
		errContainsStr string
	}{
		{
			name:  "found",
			email: "alice@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
					AddRow("u-7", "alice", "alice@example.com", "h123", created)
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantUser: &models.User{
				ID:           "u-7",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "h123",
				CreatedAt:    created,
			},
		},
		{
			name:  "not found (ErrNoRows)",
			email: "missing@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name:  "query error",
			email: "bob@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@example.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr:        true,
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t, "sqlite")
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u != nil {
					t.Fatalf("expected user=nil on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if *u != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}
