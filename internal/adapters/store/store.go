// Package store persists small client preferences in a JSON file of string
// keys to string values.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
)

// Well-known keys.
const (
	KeyUser     = "user"
	KeyDarkMode = "darkMode"
)

// Store is a file-backed key/value map. Every mutation rewrites the file.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	logger logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable entries.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the file at path. A missing or empty file yields an empty store;
// a corrupt file is logged and ignored.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadState, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.logger.Warn(ctx, "ignoring unreadable state file", logger.String("path", path), logger.Error(err))
		s.values = map[string]string{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and persists.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// LoadUser decodes the remembered user. Malformed data is logged and
// reported as absent.
func (s *Store) LoadUser(ctx context.Context) (model.User, bool) {
	raw, ok := s.Get(KeyUser)
	if !ok {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn(ctx, "error loading user data", logger.Error(err))
		return model.User{}, false
	}
	if u.Username == "" {
		return model.User{}, false
	}
	return u, true
}

// SaveUser remembers u.
func (s *Store) SaveUser(u model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	return s.Set(KeyUser, string(data))
}

// DarkMode reports whether the dark theme was chosen.
func (s *Store) DarkMode() bool {
	v, _ := s.Get(KeyDarkMode)
	return v == "true"
}

// SetDarkMode persists the theme choice.
func (s *Store) SetDarkMode(dark bool) error {
	v := "false"
	if dark {
		v = "true"
	}
	return s.Set(KeyDarkMode, v)
}

// flush writes the map to a temp file and renames it into place. Callers hold mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrWriteState, err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	if err := os.Rename(name, s.path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: %w", ErrWriteState, err)
	}
	return nil
}
