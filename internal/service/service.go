package service

import (
	"context"
	"errors"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	ParseToken(accessToken string) (string, error)
}

// Tasks exposes owner-scoped task operations. userID always comes from a verified token.
type Tasks interface {
	Create(ctx context.Context, userID string, in models.TaskPatch) (models.Task, error)
	List(ctx context.Context, userID string, f models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, userID, id string, p models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

// Stats exposes read-only aggregates over a user's tasks.
type Stats interface {
	UserStats(ctx context.Context, userID string) (models.UserStats, error)
	Productivity(ctx context.Context, userID string) ([]models.DailyCompleted, error)
}

// Health reports whether the backing store is reachable.
type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Tasks
	Stats
	Health
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey string, tokenTTL time.Duration) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, signingKey, tokenTTL),
		Tasks:         NewTaskService(repos.Tasks),
		Stats:         NewStatsService(repos.Tasks),
		Health:        pingService{repos.Pinger},
	}
}

type pingService struct {
	p repository.Pinger
}

func (s pingService) Ping(ctx context.Context) error {
	if s.p == nil {
		return errors.New("store not configured")
	}
	return s.p.PingContext(ctx)
}
