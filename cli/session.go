package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Session persists the bearer token between CLI invocations.
type Session struct {
	path string
}

// NewSession creates a session backed by the given file. An empty path
// falls back to WEBLOG_TOKEN_FILE, then ~/.weblog/token.
func NewSession(path string) *Session {
	if path == "" {
		path = os.Getenv("WEBLOG_TOKEN_FILE")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".weblog", "token")
	}
	return &Session{path: path}
}

// Token reads the saved token; empty if none is saved.
func (s *Session) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token to disk.
func (s *Session) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the saved token. A missing file is not an error.
func (s *Session) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
