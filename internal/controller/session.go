// ABOUTME: Session state holding the most recent search results.
// ABOUTME: Replaced by every search and filtered by id after a successful delete.
package controller

import "github.com/2389-research/postboard/internal/models"

// Session holds state that lives across actions but not across restarts:
// the result set of the most recent search.
type Session struct {
	results []models.Post
}

// Results returns a copy of the current search result set.
func (s *Session) Results() []models.Post {
	return append([]models.Post(nil), s.results...)
}

// Replace swaps in a new result set.
func (s *Session) Replace(posts []models.Post) {
	s.results = append([]models.Post(nil), posts...)
}

// Remove drops every post with the given id from the result set.
func (s *Session) Remove(id int64) {
	s.results = models.WithoutID(s.results, id)
}
