/*
Package session contains the local session record and its persistence.

A session is created by the backend at login and merely stored here, as a
single JSON record on disk. It is the only state that survives a restart;
everything else is refetched.
*/
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/logx"
)

// Session represents the authenticated local user as issued by the backend.
type Session struct {
	// ID is the backend user id, sent as the User-Id header on REST calls.
	ID int64 `json:"id"`

	// Username is the unique handle used for message envelopes and own-message detection.
	Username string `json:"username"`

	// Name is the display name.
	Name string `json:"name"`
}

// DisplayName returns the name to show in the UI, falling back to the username.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// Store persists exactly one Session at a fixed file path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing file means not authenticated.
// Malformed data is also treated as not authenticated rather than an error,
// so a corrupt record sends the user back through the login flow.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warn("Session file unreadable. Treating as not authenticated.", "path", s.path)
		}
		return Session{}, errs.NewError(errs.ErrNotAuthenticated)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Username == "" {
		logx.Warn("Session file malformed. Treating as not authenticated.", "path", s.path)
		return Session{}, errs.NewError(errs.ErrNotAuthenticated)
	}

	return sess, nil
}

// Save writes the session record, creating parent directories as needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsNotAuthenticated reports whether err represents a missing or unusable session.
func IsNotAuthenticated(err error) bool {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		return customErr.Code == errs.ErrNotAuthenticated
	}
	return false
}
