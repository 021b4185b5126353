// Package session holds the bearer-token credential for the current
// dashboard session. The token is persisted to disk so a user does not
// re-authenticate on every invocation, mirroring a browser session.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Store is the single holder of the session credential. All mutation
// goes through Set/Clear; callers never touch the file directly. The
// token is opaque — no structure or expiry is validated locally,
// validity is decided by the backend on next use.
type Store struct {
	mu     sync.Mutex
	path   string
	token  string
	logger *zap.Logger
}

// NewStore creates a store backed by the file at path. An existing
// persisted token is loaded; a missing or unreadable file simply means
// no session.
func NewStore(path string, logger *zap.Logger) *Store {
	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(raw))
	case errors.Is(err, fs.ErrNotExist):
		// no session yet
	default:
		logger.Warn("session: could not read credential file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return s
}

// Set persists the credential, replacing any previous one.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	s.logger.Debug("session: credential stored", zap.String("path", s.path))
	return nil
}

// Get returns the current credential, or false if none is held.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// Clear removes the credential wholesale, in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s.logger.Debug("session: credential cleared", zap.String("path", s.path))
	return nil
}
