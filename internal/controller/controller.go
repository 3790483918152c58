// ABOUTME: Post controller wiring page inputs, the API client, and the render engine.
// ABOUTME: Implements load, add, delete, search, sort and restore as two-phase actions.
package controller

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/render"
)

// Action performs the network half of a user action. It may run on any
// goroutine and must not touch the page or the session.
type Action func(ctx context.Context) Completion

// Completion applies an action's result. It must run on the goroutine that
// owns the page and session. It returns an optional follow-up action and the
// failure, if any, which has already been logged.
type Completion func() (Action, error)

// API is the subset of the HTTP client the controller needs.
type API interface {
	Get(ctx context.Context, base, path string, out any) error
	PostJSON(ctx context.Context, base, path string, body, out any) error
	Delete(ctx context.Context, base, path string) (bool, error)
}

// AddressStore persists the API base address between runs.
type AddressStore interface {
	Saved() (string, bool)
	Persist(value string)
}

// ErrDeleteRejected is reported when the API answers a delete with a non-2xx status.
var ErrDeleteRejected = errors.New("server rejected delete")

// Controller runs post actions against one page.
type Controller struct {
	api     API
	page    render.Page
	store   AddressStore
	session *Session
	logger  *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic console.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a controller with an empty session.
func New(api API, page render.Page, store AddressStore, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		page:    page,
		store:   store,
		session: &Session{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page returns the page the controller reads from and renders into.
func (c *Controller) Page() render.Page {
	return c.page
}

// Session returns the controller's session state.
func (c *Controller) Session() *Session {
	return c.session
}

// Run drives a to completion on the calling goroutine, following any
// follow-up actions. It returns the last failure seen, or nil.
func Run(ctx context.Context, a Action) error {
	var last error
	for a != nil {
		next, err := a(ctx)()
		if err != nil {
			last = err
		}
		a = next
	}
	return last
}

// Restore fills the address input from storage and loads posts.
// It returns nil when no address was saved.
func (c *Controller) Restore() Action {
	saved, ok := c.store.Saved()
	if !ok {
		return nil
	}
	c.page.SetValue(render.FieldBaseURL, saved)
	return c.Load()
}

// Load fetches all posts and renders them with delete controls.
func (c *Controller) Load() Action {
	base := c.baseURL()
	return func(ctx context.Context) Completion {
		var posts []models.Post
		err := c.api.Get(ctx, base, PostsPath, &posts)
		return func() (Action, error) {
			if err != nil {
				return nil, c.fail("load", err)
			}
			render.Render(c.page.Container(), posts, true)
			return nil, nil
		}
	}
}

// Add creates a post from the title and content inputs, then reloads.
func (c *Controller) Add() Action {
	base := c.baseURL()
	body := models.NewPost{
		Title:   c.page.Value(render.FieldPostTitle),
		Content: c.page.Value(render.FieldPostContent),
	}
	return func(ctx context.Context) Completion {
		var created models.Post
		err := c.api.PostJSON(ctx, base, PostsPath, body, &created)
		return func() (Action, error) {
			if err != nil {
				return nil, c.fail("add", err)
			}
			c.logger.Info("post added", zap.Int64("id", created.ID), zap.String("title", created.Title))
			return c.Load(), nil
		}
	}
}

// Delete removes post id on the server, then drops it from the search
// result set and renders what remains of that set.
func (c *Controller) Delete(id int64) Action {
	base := c.baseURL()
	return func(ctx context.Context) Completion {
		ok, err := c.api.Delete(ctx, base, PostPath(id))
		return func() (Action, error) {
			if err != nil {
				return nil, c.fail("delete", err, zap.Int64("id", id))
			}
			if !ok {
				return nil, c.fail("delete", ErrDeleteRejected, zap.Int64("id", id))
			}
			c.session.Remove(id)
			render.Render(c.page.Container(), c.session.Results(), true)
			return nil, nil
		}
	}
}

// Search queries by the title and content filters, stores the result set
// and renders it with delete controls.
func (c *Controller) Search() Action {
	base := c.baseURL()
	path := SearchPath(
		c.page.Value(render.FieldSearchTitle),
		c.page.Value(render.FieldSearchContent),
	)
	return func(ctx context.Context) Completion {
		var posts []models.Post
		err := c.api.Get(ctx, base, path, &posts)
		return func() (Action, error) {
			if err != nil {
				return nil, c.fail("search", err)
			}
			c.session.Replace(posts)
			render.Render(c.page.Container(), posts, true)
			return nil, nil
		}
	}
}

// Sort fetches posts ordered by the sort inputs and renders them without
// delete controls. The search result set is left as it was.
func (c *Controller) Sort() Action {
	base := c.baseURL()
	path := SortPath(
		c.page.Value(render.FieldSortField),
		c.page.Value(render.FieldSortDirection),
	)
	return func(ctx context.Context) Completion {
		var posts []models.Post
		err := c.api.Get(ctx, base, path, &posts)
		return func() (Action, error) {
			if err != nil {
				return nil, c.fail("sort", err)
			}
			render.Render(c.page.Container(), posts, false)
			return nil, nil
		}
	}
}

// baseURL reads the address input and persists it.
func (c *Controller) baseURL() string {
	v := c.page.Value(render.FieldBaseURL)
	c.store.Persist(v)
	return v
}

func (c *Controller) fail(action string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("action", action), zap.Error(err))
	c.logger.Error("action failed", fields...)
	return fmt.Errorf("%s: %w", action, err)
}
