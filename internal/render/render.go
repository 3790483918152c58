// ABOUTME: Render engine turning post sequences into container content.
// ABOUTME: Every render clears the container and rebuilds one block per post, in order.
package render

import "github.com/2389-research/postboard/internal/models"

// Block is one rendered post. Deletable blocks carry a delete control.
type Block struct {
	Post      models.Post
	Deletable bool
}

// Container is the element posts are rendered into.
type Container interface {
	// Clear removes all existing children.
	Clear()

	// Append adds a block after the existing children.
	Append(b Block)
}

// Render replaces the content of c with posts in the order given.
// withDelete controls whether each block gets a delete control.
func Render(c Container, posts []models.Post, withDelete bool) {
	c.Clear()
	for _, p := range posts {
		c.Append(Block{Post: p, Deletable: withDelete})
	}
}
