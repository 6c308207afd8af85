package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"taskflow/pkg/api"
	"taskflow/pkg/utils"
)

// persisted is the on-disk shape of a session.
type persisted struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Store is the single source of truth for "who is logged in". It keeps
// the token and profile in memory and mirrors them to a session file so
// a restart stays logged in. Screens never read the file themselves;
// they go through the store.
type Store struct {
	// API calls read the token from their own goroutines while the
	// event loop logs in or out, so access is guarded.
	mu      sync.RWMutex
	path    string
	token   string
	user    api.User
	loading bool
}

// New creates a store backed by the session file at path. The store
// reports Loading until Initialize has run.
func New(path string) *Store {
	return &Store{path: path, loading: true}
}

// Initialize restores a persisted session, if any. A present token is
// trusted without a server round trip; a dead token surfaces as a 401
// on the first API call. A missing or unreadable file just means
// logged out.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		utils.Log("ignoring corrupt session file: %v", err)
		return
	}
	if p.Token == "" {
		return
	}
	s.token = p.Token
	s.user = p.User
	utils.Log("restored session for %s", p.User.Email)
}

// Login stores the session in memory and on disk. The token is live
// for API calls as soon as this returns, even if persisting failed.
func (s *Store) Login(user api.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(persisted{Token: token, User: user}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Logout clears the session from memory and disk.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = api.User{}

	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in profile, zero when logged out.
func (s *Store) User() api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Loading reports whether Initialize has not finished yet. While true,
// consumers must not treat the session as either state.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
