// ABOUTME: Durable credential record storage with two fixed slots
// ABOUTME: File-backed store keeps token and user JSON in the XDG config directory

package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrCorruptRecord is returned by Load when the user slot cannot be parsed.
// Callers treat it as "logged out" and run teardown rather than failing.
var ErrCorruptRecord = errors.New("corrupt credential record")

// Store persists the credential record. Either both slots are populated or
// both are absent; a Load that finds only one slot reports no record.
type Store interface {
	// Save writes token and user together.
	Save(token string, user User) error
	// Load returns the stored record. ok is false when no record exists.
	Load() (token string, user User, ok bool, err error)
	// Clear removes both slots. Clearing an empty store is not an error.
	Clear() error
}

const (
	tokenFile = "auth_token"
	userFile  = "current_user.json"
)

// FileStore keeps the credential record in a config directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "captrack")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "captrack")
}

// Save implements Store.
func (fs *FileStore) Save(token string, user User) error {
	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(fs.dir, userFile), data, 0600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(fs.dir, tokenFile), []byte(token), 0600)
}

// Load implements Store.
func (fs *FileStore) Load() (string, User, bool, error) {
	tok, err := os.ReadFile(filepath.Join(fs.dir, tokenFile))
	if os.IsNotExist(err) {
		return "", User{}, false, nil
	}
	if err != nil {
		return "", User{}, false, err
	}
	token := strings.TrimSpace(string(tok))

	data, err := os.ReadFile(filepath.Join(fs.dir, userFile))
	if os.IsNotExist(err) {
		// Half a record is no record.
		return "", User{}, false, nil
	}
	if err != nil {
		return "", User{}, false, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return "", User{}, false, ErrCorruptRecord
	}
	if token == "" {
		return "", User{}, false, nil
	}
	return token, user, true, nil
}

// Clear implements Store.
func (fs *FileStore) Clear() error {
	if err := os.Remove(filepath.Join(fs.dir, tokenFile)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(fs.dir, userFile)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	token   string
	user    User
	has     bool
	corrupt bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Corrupt marks the stored record as unparseable.
func (ms *MemStore) Corrupt() {
	ms.corrupt = true
}

// Save implements Store.
func (ms *MemStore) Save(token string, user User) error {
	ms.token = token
	ms.user = user
	ms.has = true
	ms.corrupt = false
	return nil
}

// Load implements Store.
func (ms *MemStore) Load() (string, User, bool, error) {
	if ms.corrupt {
		return "", User{}, false, ErrCorruptRecord
	}
	if !ms.has {
		return "", User{}, false, nil
	}
	return ms.token, ms.user, true, nil
}

// Clear implements Store.
func (ms *MemStore) Clear() error {
	ms.token = ""
	ms.user = User{}
	ms.has = false
	ms.corrupt = false
	return nil
}
