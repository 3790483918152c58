// ABOUTME: In-memory fake of the remote post API for tests.
// ABOUTME: Serves list/sort, search, create, update and delete under /api using chi.
package postapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi"

	"github.com/2389-research/postboard/internal/models"
)

// Prefix is the mount point of the API; BaseURL includes it.
const Prefix = "/api"

// Server is a running fake API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	posts    []models.Post
	requests []string
	failing  int
}

// Seed returns the two posts the API starts with.
func Seed() []models.Post {
	return []models.Post{
		{ID: 1, Title: "First post", Content: "This is the first post."},
		{ID: 2, Title: "Second post", Content: "This is the second post."},
	}
}

// New starts a fake API holding posts. Close it when done.
func New(posts []models.Post) *Server {
	s := &Server{posts: append([]models.Post(nil), posts...)}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route(Prefix+"/posts", func(r chi.Router) {
		r.Get("/", s.listPosts)
		r.Post("/", s.addPost)
		r.Get("/search", s.searchPosts)
		r.Put("/{id}", s.updatePost)
		r.Delete("/{id}", s.deletePost)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the address a client should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + Prefix
}

// Posts returns a copy of the current server-side posts.
func (s *Server) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post(nil), s.posts...)
}

// Requests returns the request URIs received so far, in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// FailNext makes the next n requests answer 500.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.RequestURI)
		fail := s.failing > 0
		if fail {
			s.failing--
		}
		s.mu.Unlock()

		if fail {
			writeJSON(w, http.StatusInternalServerError, errorBody("injected failure"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("sort")
	direction := strings.ToLower(r.URL.Query().Get("direction"))
	if direction == "" {
		direction = string(models.SortAscending)
	}

	if field != "" && field != string(models.SortByTitle) && field != string(models.SortByContent) {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("Invalid sort field '%s'. Allowed values: title, content.", field)))
		return
	}
	if direction != string(models.SortAscending) && direction != string(models.SortDescending) {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("Invalid sort direction '%s'. Allowed values: asc, desc.", direction)))
		return
	}

	posts := s.Posts()
	if field != "" {
		key := func(p models.Post) string {
			if field == string(models.SortByContent) {
				return strings.ToLower(p.Content)
			}
			return strings.ToLower(p.Title)
		}
		sort.SliceStable(posts, func(i, j int) bool {
			if direction == string(models.SortDescending) {
				return key(posts[i]) > key(posts[j])
			}
			return key(posts[i]) < key(posts[j])
		})
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) addPost(w http.ResponseWriter, r *http.Request) {
	var body map[string]*string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["title"] == nil || body["content"] == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Both title and content are mandatory"))
		return
	}

	s.mu.Lock()
	var next int64 = 1
	for _, p := range s.posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	post := models.Post{ID: next, Title: *body["title"], Content: *body["content"]}
	s.posts = append(s.posts, post)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) searchPosts(w http.ResponseWriter, r *http.Request) {
	title := strings.ToLower(r.URL.Query().Get("title"))
	content := strings.ToLower(r.URL.Query().Get("content"))

	matches := []models.Post{}
	if title == "" && content == "" {
		writeJSON(w, http.StatusOK, matches)
		return
	}
	for _, p := range s.Posts() {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(p.Content), content) {
			continue
		}
		matches = append(matches, p)
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if body.Title != nil {
			s.posts[i].Title = *body.Title
		}
		if body.Content != nil {
			s.posts[i].Content = *body.Content
		}
		writeJSON(w, http.StatusOK, s.posts[i])
		return
	}
	writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("Post id %d not found", id)))
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Post with id %d has been deleted", id)})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("Post id %d not found", id)))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
