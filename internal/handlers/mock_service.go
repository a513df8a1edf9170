package handlers

import (
	"context"
	"net/http"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  string
	registerErr error
	loginRes    service.LoginResult
	loginErr    error
	parseID     string
	parseErr    error

	lastRegisterUsername string
	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, email, password string) (string, error) {
	m.lastRegisterUsername = username
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, email, password string) (service.LoginResult, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginRes, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTasks struct {
	task  models.Task
	tasks []models.Task
	err   error

	lastUserID string
	lastID     string
	lastFilter models.TaskFilter
	lastPatch  models.TaskPatch
}

func (m *mockTasks) Create(_ context.Context, userID string, in models.TaskPatch) (models.Task, error) {
	m.lastUserID, m.lastPatch = userID, in
	return m.task, m.err
}
func (m *mockTasks) List(_ context.Context, userID string, f models.TaskFilter) ([]models.Task, error) {
	m.lastUserID, m.lastFilter = userID, f
	return m.tasks, m.err
}
func (m *mockTasks) Update(_ context.Context, userID, id string, p models.TaskPatch) (models.Task, error) {
	m.lastUserID, m.lastID, m.lastPatch = userID, id, p
	return m.task, m.err
}
func (m *mockTasks) Delete(_ context.Context, userID, id string) error {
	m.lastUserID, m.lastID = userID, id
	return m.err
}

type mockStats struct {
	stats models.UserStats
	days  []models.DailyCompleted
	err   error

	lastUserID string
}

func (m *mockStats) UserStats(_ context.Context, userID string) (models.UserStats, error) {
	m.lastUserID = userID
	return m.stats, m.err
}
func (m *mockStats) Productivity(_ context.Context, userID string) ([]models.DailyCompleted, error) {
	m.lastUserID = userID
	return m.days, m.err
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(context.Context) error { return m.err }

// ---- Shared Test Helpers ----

const testBasePath = "/api"

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{BasePath: testBasePath, AllowedOrigins: []string{"*"}})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
