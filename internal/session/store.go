// Package session holds the authenticated identity: one token plus a
// user profile snapshot, kept in memory and mirrored to disk. The
// store is the single source of truth for both; login, logout and
// profile updates are the only writers.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"agrigest/internal/types"
)

// Session is the persisted token + user pair.
type Session struct {
	Token     string     `json:"token"`
	User      types.User `json:"user"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Store manages the session file. Safe for concurrent use, though in
// practice all writes are user-initiated and serialized by the UI.
type Store struct {
	filePath string

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a store backed by ~/.agrigest/session.json.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(home, ".agrigest", "session.json")), nil
}

// NewStoreAt creates a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	s := &Store{filePath: path}
	// A missing or unreadable file just means anonymous.
	_ = s.Load()
	return s
}

// Load reads the session file from disk.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}
	if sess.Token == "" {
		s.current = nil
		return nil
	}
	s.current = &sess
	return nil
}

// Login persists a new token + user pair and flips the store to
// authenticated.
func (s *Store) Login(token string, user types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &Session{Token: token, User: user, UpdatedAt: time.Now()}
	return s.saveUnlocked()
}

// UpdateUser re-persists the profile snapshot after a profile update.
// No-op when anonymous.
func (s *Store) UpdateUser(user types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	s.current.User = user
	s.current.UpdatedAt = time.Now()
	return s.saveUnlocked()
}

// Clear wipes both the in-memory session and the file. Used by logout
// and by the 401 expiry path; the two keys always go together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the current auth token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the profile snapshot and whether a session exists.
func (s *Store) User() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return types.User{}, false
	}
	return s.current.User, true
}

// Authenticated reports whether a session is held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) saveUnlocked() error {
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}
