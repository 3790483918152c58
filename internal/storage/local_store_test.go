// ABOUTME: Tests for the per-origin key-value stores.
// ABOUTME: Covers persistence across instances, origin isolation, and removal.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "default")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if _, ok := store.GetItem("apiBaseUrl"); ok {
		t.Error("expected missing key on fresh store")
	}
	if err := store.SetItem("apiBaseUrl", "http://x"); err != nil {
		t.Fatalf("SetItem error: %v", err)
	}

	// A new instance on the same file sees the value.
	reopened, err := NewFileStore(dir, "default")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	got, ok := reopened.GetItem("apiBaseUrl")
	if !ok || got != "http://x" {
		t.Errorf("GetItem = %q, %v; want %q, true", got, ok, "http://x")
	}
}

func TestFileStoreOriginsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewFileStore(dir, "a")
	b, _ := NewFileStore(dir, "b")

	if err := a.SetItem("k", "from-a"); err != nil {
		t.Fatalf("SetItem error: %v", err)
	}
	if _, ok := b.GetItem("k"); ok {
		t.Error("origin b must not see origin a's items")
	}
}

func TestFileStoreSanitizesOrigin(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:5002")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	base := filepath.Base(store.Path())
	if strings.ContainsAny(base, ":/") {
		t.Errorf("expected sanitized file name, got %q", base)
	}
}

func TestFileStoreRequiresOrigin(t *testing.T) {
	if _, err := NewFileStore(t.TempDir(), ""); err == nil {
		t.Error("expected error for empty origin")
	}
}

func TestFileStoreRemoveItem(t *testing.T) {
	store, _ := NewFileStore(t.TempDir(), "default")
	_ = store.SetItem("k", "v")

	if err := store.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if _, ok := store.GetItem("k"); ok {
		t.Error("expected key to be removed")
	}
	if err := store.RemoveItem("missing"); err != nil {
		t.Errorf("RemoveItem on missing key should not fail: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir, "default")
	if err := os.WriteFile(store.Path(), []byte("- a\n- b\n"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, ok := store.GetItem("k"); ok {
		t.Error("expected corrupt file to read as empty")
	}
	if err := store.SetItem("k", "v"); err == nil {
		t.Error("expected SetItem to report the corrupt file")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	_ = store.SetItem("k", "v")
	if got, ok := store.GetItem("k"); !ok || got != "v" {
		t.Errorf("GetItem = %q, %v", got, ok)
	}
	_ = store.RemoveItem("k")
	if _, ok := store.GetItem("k"); ok {
		t.Error("expected key removed")
	}
}
