package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

var _ TokenStore = &FileTokenStore{}

// FileTokenStore persists the bearer token in a single file so a session
// survives process restarts. The file is the well-known slot: a missing or
// empty file means "no session".
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(raw))
	return token, token != ""
}

func (f *FileTokenStore) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token == "" {
		return f.clearLocked()
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create token directory")
		}
	}

	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist token")
	}
	return nil
}

// Clear removes the slot. Idempotent: a missing file is not an error.
func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clearLocked()
}

func (f *FileTokenStore) clearLocked() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear token")
	}
	return nil
}
