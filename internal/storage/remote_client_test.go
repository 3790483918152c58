// ABOUTME: Tests for the post API client using httptest servers.
// ABOUTME: Covers verbs, JSON handling, status errors, query escaping and request ids.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/postapitest"
)

func TestRemoteClientGetPosts(t *testing.T) {
	api := postapitest.New(postapitest.Seed())
	defer api.Close()

	client := NewRemoteClient()
	var posts []models.Post
	if err := client.Get(context.Background(), api.BaseURL(), "/posts", &posts); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != "First post" {
		t.Errorf("expected 'First post', got %q", posts[0].Title)
	}
}

func TestRemoteClientPostJSON(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/posts" {
			t.Errorf("expected path /api/posts, got %s", r.URL.Path)
		}
		receivedContentType = r.Header.Get("Content-Type")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7, "title": "t", "content": "c"}`))
	}))
	defer server.Close()

	client := NewRemoteClient()
	var created models.Post
	err := client.PostJSON(context.Background(), server.URL+"/api", "/posts", models.NewPost{Title: "t", Content: "c"}, &created)
	if err != nil {
		t.Fatalf("PostJSON error: %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected 'application/json', got %q", receivedContentType)
	}
	var payload map[string]string
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("failed to unmarshal request body: %v", err)
	}
	if payload["title"] != "t" || payload["content"] != "c" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if created.ID != 7 {
		t.Errorf("expected id 7, got %d", created.ID)
	}
}

func TestRemoteClientGetNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	var posts []models.Post
	err := NewRemoteClient().Get(context.Background(), server.URL, "/posts", &posts)
	if err == nil {
		t.Fatal("expected decode error for non-JSON body")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got: %v", err)
	}
}

func TestRemoteClientStatusError(t *testing.T) {
	api := postapitest.New(postapitest.Seed())
	defer api.Close()

	var posts []models.Post
	err := NewRemoteClient().Get(context.Background(), api.BaseURL(), "/posts?sort=author", &posts)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", statusErr.Code)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("expected error to mention status code, got: %v", err)
	}
}

func TestRemoteClientConnectionError(t *testing.T) {
	var posts []models.Post
	err := NewRemoteClient().Get(context.Background(), "http://127.0.0.1:1", "/posts", &posts)
	if err == nil {
		t.Fatal("expected error for connection failure")
	}
}

func TestRemoteClientDelete(t *testing.T) {
	api := postapitest.New(postapitest.Seed())
	defer api.Close()

	client := NewRemoteClient()
	ok, err := client.Delete(context.Background(), api.BaseURL(), "/posts/1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !ok {
		t.Error("expected ok for existing post")
	}
	if len(api.Posts()) != 1 {
		t.Errorf("expected 1 remaining post, got %d", len(api.Posts()))
	}

	ok, err = client.Delete(context.Background(), api.BaseURL(), "/posts/1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if ok {
		t.Error("expected !ok for missing post")
	}
}

func TestRemoteClientDeleteConnectionError(t *testing.T) {
	ok, err := NewRemoteClient().Delete(context.Background(), "http://127.0.0.1:1", "/posts/1")
	if err == nil {
		t.Fatal("expected error for connection failure")
	}
	if ok {
		t.Error("expected ok=false on error")
	}
}

func TestRemoteClientSendsUnescapedQueryLikeABrowser(t *testing.T) {
	api := postapitest.New(postapitest.Seed())
	defer api.Close()

	var posts []models.Post
	err := NewRemoteClient().Get(context.Background(), api.BaseURL(), "/posts/search?title=first post&", &posts)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 1 {
		t.Errorf("expected post 1, got %+v", posts)
	}

	reqs := api.Requests()
	want := "GET /api/posts/search?title=first%20post&"
	if reqs[len(reqs)-1] != want {
		t.Errorf("expected %q, got %q", want, reqs[len(reqs)-1])
	}
}

func TestRemoteClientRequestID(t *testing.T) {
	var ids []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewRemoteClient()
	var posts []models.Post
	for i := 0; i < 2; i++ {
		if err := client.Get(context.Background(), server.URL, "/posts", &posts); err != nil {
			t.Fatalf("Get error: %v", err)
		}
	}
	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("expected two distinct request ids, got %v", ids)
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "sort=title&direction=desc", "sort=title&direction=desc"},
		{"space", "title=a b&", "title=a%20b&"},
		{"already escaped", "sort=a%20b", "sort=a%20b"},
		{"quotes and angles", `q="<x>"`, "q=%22%3Cx%3E%22"},
		{"non-ascii", "title=café", "title=caf%C3%A9"},
		{"tab and newlines dropped", "title=a\tb\r\nc&", "title=abc&"},
		{"other controls", "title=a\x01b\x7f", "title=a%01b%7F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeQuery(tt.input); got != tt.want {
				t.Errorf("escapeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemoteClientSendsControlCharactersInQuery(t *testing.T) {
	api := postapitest.New(postapitest.Seed())
	defer api.Close()

	var posts []models.Post
	err := NewRemoteClient().Get(context.Background(), api.BaseURL(), "/posts/search?title=first\tpost&content=x\x01&", &posts)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	reqs := api.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %v", reqs)
	}
	want := "GET /api/posts/search?title=firstpost&content=x%01&"
	if reqs[0] != want {
		t.Errorf("expected %q, got %q", want, reqs[0])
	}
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestRemoteClientTransportFailure(t *testing.T) {
	cause := errors.New("network unreachable")
	client := NewRemoteClient(WithHTTPClient(&http.Client{Transport: failingTransport{err: cause}}))

	var posts []models.Post
	err := client.Get(context.Background(), "http://api.invalid", "/posts", &posts)
	if !errors.Is(err, cause) {
		t.Fatalf("expected transport error, got %v", err)
	}

	ok, err := client.Delete(context.Background(), "http://api.invalid", "/posts/1")
	if ok || !errors.Is(err, cause) {
		t.Errorf("Delete = %v, %v; want false and transport error", ok, err)
	}

	err = client.PostJSON(context.Background(), "http://api.invalid", "/posts", map[string]string{"title": "t"}, &posts)
	if !errors.Is(err, cause) {
		t.Errorf("expected transport error from PostJSON, got %v", err)
	}
}
