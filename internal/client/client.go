// Package client is a Go client for the task manager HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"task_manager/internal/models"
)

const defaultTimeout = 15 * time.Second

// ErrNotAuthenticated means there is no usable session; the caller should log in again.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the API rooted at baseURL (for example http://localhost:5000/api).
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client. A nil httpClient gets a default with a timeout.
func New(baseURL string, session *Session, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if session == nil {
		session, _ = NewSession(nil)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

func (c *Client) Session() *Session { return c.session }

// TaskInput is the body of create and update calls. Empty fields are omitted,
// so on update they leave the stored value unchanged.
type TaskInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// ListOptions mirrors the list query parameters.
type ListOptions struct {
	Status   string
	Priority string
	SortBy   string
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Priority != "" {
		q.Set("priority", o.Priority)
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil, false)
}

// Login stores the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (SessionData, error) {
	var out SessionData
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return SessionData{}, err
	}
	if err := c.session.Set(out); err != nil {
		return SessionData{}, fmt.Errorf("save session: %w", err)
	}
	return out, nil
}

// Logout forgets the token locally. Tokens are stateless, so the server is not called.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) ListTasks(ctx context.Context, opts ListOptions) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/tasks"+opts.query(), nil, &out, true)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", in, &out, true)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, in TaskInput) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, &out, true)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, true)
}

func (c *Client) UserStats(ctx context.Context) (models.UserStats, error) {
	var out models.UserStats
	err := c.do(ctx, http.MethodGet, "/stats/user", nil, &out, true)
	return out, err
}

func (c *Client) Productivity(ctx context.Context) ([]models.DailyCompleted, error) {
	var out []models.DailyCompleted
	err := c.do(ctx, http.MethodGet, "/stats/productivity", nil, &out, true)
	return out, err
}

// do sends one request. Protected calls fail fast without a token, and a 401
// clears the session.
func (c *Client) do(ctx context.Context, method, path string, in, out any, protected bool) error {
	token := c.session.Token()
	if protected && token == "" {
		return ErrNotAuthenticated
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && protected {
		_ = c.session.Clear()
		return ErrNotAuthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == "" {
		payload.Message = strings.TrimSpace(string(raw))
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}
