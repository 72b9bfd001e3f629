package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the credential pair a client holds between calls: the bearer
// token plus the user it resolved to. A zero Session means logged out.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SessionStore persists a session across process restarts.
type SessionStore interface {
	// Load returns the stored session; a missing session is a zero value,
	// not an error.
	Load() (Session, error)

	// Save replaces the stored session.
	Save(session Session) error

	// Clear removes the stored session.
	Clear() error
}

// FileSessionStore keeps the session as a JSON file, the local-storage
// equivalent for a Go client.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a store at the given path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath places the session file under the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "taskhub", "session.json"), nil
}

func (s *FileSessionStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file is treated as logged out.
		return Session{}, nil
	}

	return session, nil
}

func (s *FileSessionStore) Save(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemorySessionStore holds the session in memory only. Useful for tests and
// short-lived processes.
type MemorySessionStore struct {
	session Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (Session, error) {
	return s.session, nil
}

func (s *MemorySessionStore) Save(session Session) error {
	s.session = session
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.session = Session{}
	return nil
}
