// ABOUTME: Durable per-origin key-value store for client-side settings.
// ABOUTME: Persists string items as a YAML map, one file per origin, written atomically.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// LocalStore is a string key-value store that survives process restarts.
type LocalStore interface {
	// GetItem returns the stored value and whether the key was present.
	GetItem(key string) (string, bool)

	// SetItem stores value under key.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
}

// FileStore is a LocalStore backed by <dir>/<origin>.yaml.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var unsafeOriginChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewFileStore opens the store for origin inside dir. The file is created lazily.
func NewFileStore(dir, origin string) (*FileStore, error) {
	if origin == "" {
		return nil, fmt.Errorf("origin is required")
	}
	name := unsafeOriginChars.ReplaceAllString(origin, "_")
	return &FileStore{path: filepath.Join(dir, name+".yaml")}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// GetItem returns the stored value for key. A missing or unreadable file reads as empty.
func (s *FileStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false
	}
	v, ok := items[key]
	return v, ok
}

// SetItem stores value under key.
func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(items)
}

// RemoveItem deletes key from the store.
func (s *FileStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

func (s *FileStore) read() (map[string]string, error) {
	items := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if items == nil {
		items = make(map[string]string)
	}
	return items, nil
}

func (s *FileStore) write(items map[string]string) error {
	data, err := yaml.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	return atomicWrite(s.path, data)
}

// atomicWrite writes data to a temp file in the target directory and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// MemoryStore is an in-process LocalStore, useful for tests and headless runs.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
