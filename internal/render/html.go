// ABOUTME: HTML container backed by an x/net/html element node.
// ABOUTME: Builds div.post blocks with title, content, and an optional delete button.
package render

import (
	"bytes"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLContainer renders blocks as child elements of an HTML node.
type HTMLContainer struct {
	node *html.Node
}

// NewHTMLContainer wraps node. Rendering replaces all of node's children.
func NewHTMLContainer(node *html.Node) *HTMLContainer {
	return &HTMLContainer{node: node}
}

// Clear removes every child of the container node.
func (c *HTMLContainer) Clear() {
	for child := c.node.FirstChild; child != nil; {
		next := child.NextSibling
		c.node.RemoveChild(child)
		child = next
	}
}

// Append adds a <div class="post"> for b.
func (c *HTMLContainer) Append(b Block) {
	div := element(atom.Div, html.Attribute{Key: "class", Val: "post"})

	h2 := element(atom.H2)
	h2.AppendChild(text(b.Post.Title))
	div.AppendChild(h2)

	p := element(atom.P)
	p.AppendChild(text(b.Post.Content))
	div.AppendChild(p)

	if b.Deletable {
		id := strconv.FormatInt(b.Post.ID, 10)
		button := element(atom.Button,
			html.Attribute{Key: "data-post-id", Val: id},
			html.Attribute{Key: "onclick", Val: "deletePost(" + id + ")"},
		)
		button.AppendChild(text("Delete"))
		div.AppendChild(button)
	}

	c.node.AppendChild(div)
}

// Node returns the underlying container element.
func (c *HTMLContainer) Node() *html.Node {
	return c.node
}

// InnerHTML serialises the container's children.
func (c *HTMLContainer) InnerHTML() string {
	var buf bytes.Buffer
	for child := c.node.FirstChild; child != nil; child = child.NextSibling {
		_ = html.Render(&buf, child)
	}
	return buf.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
