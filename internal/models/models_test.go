// ABOUTME: Tests for post model helpers.
// ABOUTME: Covers id filtering used by the search result set.
package models

import "testing"

func TestWithoutID(t *testing.T) {
	posts := []Post{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 1, Title: "dup"},
		{ID: 3, Title: "c"},
	}

	got := WithoutID(posts, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("unexpected order: %+v", got)
	}
	if len(posts) != 4 {
		t.Error("input slice must not be modified")
	}
}

func TestWithoutIDMissing(t *testing.T) {
	posts := []Post{{ID: 1}, {ID: 2}}
	got := WithoutID(posts, 99)
	if len(got) != 2 {
		t.Errorf("expected unchanged length, got %d", len(got))
	}
}

func TestWithoutIDEmpty(t *testing.T) {
	got := WithoutID(nil, 1)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
