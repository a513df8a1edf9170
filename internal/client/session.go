package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionData is what survives between runs: the token and who it belongs to.
type SessionData struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// SessionStore persists a session. Load returns a zero SessionData when nothing is stored.
type SessionStore interface {
	Load() (SessionData, error)
	Save(SessionData) error
	Clear() error
}

// Session holds the current credentials for a Client. It is set at login,
// cleared at logout or on a 401, and read by every outgoing request.
type Session struct {
	mu    sync.RWMutex
	data  SessionData
	store SessionStore
}

// NewSession restores any stored session. store may be nil for an in-memory session.
func NewSession(store SessionStore) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	data, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s.data = data
	return s, nil
}

func (s *Session) Set(data SessionData) error {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.Save(data)
}

func (s *Session) Clear() error {
	s.mu.Lock()
	s.data = SessionData{}
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// Data returns a copy of the current session.
func (s *Session) Data() SessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// FileStore keeps the session as JSON in a single file readable only by the owner.
type FileStore struct {
	Path string
}

func (f FileStore) Load() (SessionData, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return SessionData{}, nil
	}
	if err != nil {
		return SessionData{}, err
	}
	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SessionData{}, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return data, nil
}

func (f FileStore) Save(data SessionData) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o600)
}

func (f FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
