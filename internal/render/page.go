// ABOUTME: Page abstraction: named input fields plus a post container.
// ABOUTME: Document implements it over an HTML document using goquery lookups.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/2389-research/postboard/internal/models"
)

// Field names an input on the page.
type Field string

const (
	FieldBaseURL       Field = "api-base-url"
	FieldPostTitle     Field = "post-title"
	FieldPostContent   Field = "post-content"
	FieldSearchTitle   Field = "search-title"
	FieldSearchContent Field = "search-content"
	FieldSortField     Field = "sort-field"
	FieldSortDirection Field = "sort-direction"
)

// ContainerID is the id of the element posts are rendered into.
const ContainerID = "post-container"

// Fields lists every input the page provides, in display order.
var Fields = []Field{
	FieldBaseURL,
	FieldPostTitle,
	FieldPostContent,
	FieldSearchTitle,
	FieldSearchContent,
	FieldSortField,
	FieldSortDirection,
}

// Page is what the post controller reads inputs from and renders into.
type Page interface {
	Value(f Field) string
	SetValue(f Field, v string)
	Container() Container
}

// DefaultMarkup is the built-in page used when no custom document is supplied.
const DefaultMarkup = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Posts</title></head>
<body>
<div class="config">
  <input type="text" id="api-base-url" placeholder="http://localhost:5002/api">
  <button onclick="loadPosts()">Load Posts</button>
</div>
<div class="new-post">
  <input type="text" id="post-title" placeholder="Title">
  <textarea id="post-content" placeholder="Content"></textarea>
  <button onclick="addPost()">Add Post</button>
</div>
<div class="search">
  <input type="text" id="search-title" placeholder="Search by title">
  <input type="text" id="search-content" placeholder="Search by content">
  <button onclick="searchPosts()">Search</button>
</div>
<div class="sort">
  <select id="sort-field"><option value="title">Title</option><option value="content">Content</option></select>
  <select id="sort-direction"><option value="asc">Ascending</option><option value="desc">Descending</option></select>
  <button onclick="sortPosts()">Sort</button>
</div>
<div id="post-container"></div>
</body>
</html>
`

// Document is a Page over a parsed HTML document.
type Document struct {
	doc       *goquery.Document
	container *HTMLContainer
}

// ParseDocument parses markup that must contain an element with id ContainerID.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	sel := doc.Find("#" + ContainerID)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("page has no #%s element", ContainerID)
	}
	return &Document{
		doc:       doc,
		container: NewHTMLContainer(sel.Nodes[0]),
	}, nil
}

// DefaultDocument returns a fresh Document over DefaultMarkup.
func DefaultDocument() *Document {
	d, err := ParseDocument(strings.NewReader(DefaultMarkup))
	if err != nil {
		panic(err)
	}
	return d
}

// Value returns the current value of field f, or "" if the page lacks it.
func (d *Document) Value(f Field) string {
	sel := d.field(f)
	if sel.Length() == 0 {
		return ""
	}
	switch goquery.NodeName(sel) {
	case "textarea":
		return sel.Text()
	case "select":
		options := sel.Find("option")
		chosen := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
			_, ok := o.Attr("selected")
			return ok
		})
		if chosen.Length() == 0 {
			chosen = options
		}
		if chosen.Length() == 0 {
			return ""
		}
		first := chosen.First()
		if v, ok := first.Attr("value"); ok {
			return v
		}
		return first.Text()
	default:
		return sel.AttrOr("value", "")
	}
}

// SetValue sets field f to v. Selects gain an option for v when none matches.
func (d *Document) SetValue(f Field, v string) {
	sel := d.field(f)
	if sel.Length() == 0 {
		return
	}
	switch goquery.NodeName(sel) {
	case "textarea":
		sel.SetText(v)
	case "select":
		options := sel.Find("option")
		options.RemoveAttr("selected")
		match := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
			return o.AttrOr("value", o.Text()) == v
		})
		if match.Length() > 0 {
			match.First().SetAttr("selected", "")
			return
		}
		opt := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Option,
			Data:     "option",
			Attr:     []html.Attribute{{Key: "value", Val: v}, {Key: "selected", Val: ""}},
		}
		opt.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		sel.Nodes[0].AppendChild(opt)
	default:
		sel.SetAttr("value", v)
	}
}

// Container returns the #post-container element.
func (d *Document) Container() Container {
	return d.container
}

// PostsHTML serialises only the container's children.
func (d *Document) PostsHTML() string {
	return d.container.InnerHTML()
}

// Blocks reads the rendered posts back out of the container markup.
func (d *Document) Blocks() []Block {
	var blocks []Block
	sel := goquery.NewDocumentFromNode(d.container.Node()).Find("div.post")
	sel.Each(func(_ int, post *goquery.Selection) {
		b := Block{Post: models.Post{
			Title:   post.ChildrenFiltered("h2").Text(),
			Content: post.ChildrenFiltered("p").Text(),
		}}
		if raw, ok := post.Find("button[data-post-id]").Attr("data-post-id"); ok {
			b.Post.ID, _ = strconv.ParseInt(raw, 10, 64)
			b.Deletable = true
		}
		blocks = append(blocks, b)
	})
	return blocks
}

// HTML serialises the whole document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render page: %w", err)
		}
	}
	return buf.String(), nil
}

func (d *Document) field(f Field) *goquery.Selection {
	return d.doc.Find("#" + string(f)).First()
}
