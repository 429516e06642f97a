package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/usernamenul1/sportline/pkg/auth"
)

// record is the on-disk session document. Token and profile live in one
// file so they cannot be cleared independently.
type record struct {
	AccessToken string     `json:"access_token"`
	User        *auth.User `json:"user,omitempty"`
}

// FileStore persists the session in a JSON file, the local-storage
// equivalent for a process with a filesystem. The file is created with
// owner-only permissions since it holds a live credential.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path. An empty path places
// the file under the user's configuration directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session: cannot resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "sportline", "session.json")
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the session file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(token string, user *auth.User) error {
	data, err := json.Marshal(record{AccessToken: token, User: user})
	if err != nil {
		return fmt.Errorf("session: serialize: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (string, *auth.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("session: read: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt file is treated as an absent session; the next Save
		// or Clear replaces it.
		return "", nil, nil
	}
	return rec.AccessToken, rec.User, nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *FileStore) Token() string {
	token, _, _ := s.Load()
	return token
}
