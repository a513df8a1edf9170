package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"task_manager/internal/service"
)

func postJSON(t *testing.T, r http.Handler, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	auth := &mockAuth{
		registerID: "u-42",
		loginRes:   service.LoginResult{Token: "tok123", UserID: "u-42", Username: "u"},
	}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// register success
	w := postJSON(t, r, "/api/auth/register", `{"username":"u","email":"u@example.com","password":"p"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var reg registerResponse
	_ = json.Unmarshal(w.Body.Bytes(), &reg)
	if reg.UserID != "u-42" || reg.Message != "User registered successfully" {
		t.Fatalf("unexpected register body %+v", reg)
	}
	if auth.lastRegisterEmail != "u@example.com" || auth.lastRegisterPassword != "p" {
		t.Fatalf("register got %q/%q", auth.lastRegisterEmail, auth.lastRegisterPassword)
	}

	// login success
	w = postJSON(t, r, "/api/auth/login", `{"email":"u@example.com","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var res service.LoginResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Token != "tok123" || res.UserID != "u-42" || res.Username != "u" {
		t.Fatalf("unexpected login body %+v", res)
	}

	// login invalid body -> 400
	w = postJSON(t, r, "/api/auth/login", `{"email":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		auth     *mockAuth
		wantCode int
		wantMsg  string
	}{
		{
			name:     "duplicate email",
			path:     "/api/auth/register",
			auth:     &mockAuth{registerErr: service.ErrUserExists},
			wantCode: http.StatusBadRequest,
			wantMsg:  "User already exists",
		},
		{
			name:     "missing field",
			path:     "/api/auth/register",
			auth:     &mockAuth{registerErr: &service.ValidationError{Field: "email", Message: "Email is required"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Email is required",
		},
		{
			name:     "bad credentials",
			path:     "/api/auth/login",
			auth:     &mockAuth{loginErr: service.ErrInvalidCredentials},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid credentials",
		},
		{
			name:     "store failure",
			path:     "/api/auth/login",
			auth:     &mockAuth{loginErr: errors.New("db down")},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := postJSON(t, r, tc.path, `{"username":"u","email":"u@example.com","password":"p"}`, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d; body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var out errorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Message != tc.wantMsg {
				t.Fatalf("message=%q, want %q", out.Message, tc.wantMsg)
			}
			if tc.wantCode == http.StatusInternalServerError && out.Error != "db down" {
				t.Fatalf("expected error detail, got %q", out.Error)
			}
		})
	}
}
