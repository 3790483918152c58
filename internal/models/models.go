// ABOUTME: Core data models for posts served by the remote post API.
// ABOUTME: Defines the Post record, the create payload, and sort vocabulary.
package models

// Post is a post record as returned by the API. ID is assigned by the server.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewPost is the JSON body sent when creating a post.
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SortField names a post attribute the API can sort by.
type SortField string

const (
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
)

// SortDirection is the ordering applied by a sort request.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortFields lists the fields the API accepts, in display order.
var SortFields = []SortField{SortByTitle, SortByContent}

// SortDirections lists the directions the API accepts, in display order.
var SortDirections = []SortDirection{SortAscending, SortDescending}

// WithoutID returns posts minus every post whose ID is id, preserving order.
// The input slice is not modified.
func WithoutID(posts []Post, id int64) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
