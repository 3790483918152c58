// ABOUTME: Persisted API base address, kept in per-origin local storage.
// ABOUTME: Restores the saved address on startup and records it on every request.
package config

import (
	"github.com/2389-research/postboard/internal/storage"
)

// BaseURLKey is the local storage key holding the API base address.
const BaseURLKey = "apiBaseUrl"

// Store reads and writes the API base address.
type Store struct {
	items storage.LocalStore
}

// NewStore wraps a local storage backend.
func NewStore(items storage.LocalStore) *Store {
	return &Store{items: items}
}

// OpenStore opens the file-backed store for the configured origin.
func OpenStore(cfg *Config) (*Store, error) {
	dir, err := OriginsDir()
	if err != nil {
		return nil, err
	}
	items, err := storage.NewFileStore(dir, cfg.GetOrigin())
	if err != nil {
		return nil, err
	}
	return NewStore(items), nil
}

// Saved returns the persisted base address, if any. An empty stored value counts as absent.
func (s *Store) Saved() (string, bool) {
	v, ok := s.items.GetItem(BaseURLKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Set records value as the base address.
func (s *Store) Set(value string) error {
	return s.items.SetItem(BaseURLKey, value)
}

// Persist records value as the base address. Write failures are dropped.
func (s *Store) Persist(value string) {
	_ = s.Set(value)
}

// Location describes where the address is kept: a file path, or "memory".
func (s *Store) Location() string {
	if f, ok := s.items.(interface{ Path() string }); ok {
		return f.Path()
	}
	return "memory"
}

// Clear forgets the persisted base address.
func (s *Store) Clear() error {
	return s.items.RemoveItem(BaseURLKey)
}
