// ABOUTME: Tests for the render engine and its HTML and terminal containers.
// ABOUTME: Checks block order, delete controls, text escaping, and cursor behaviour.
package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/postboard/internal/models"
)

var samplePosts = []models.Post{
	{ID: 2, Title: "Second", Content: "two"},
	{ID: 1, Title: "First", Content: "one"},
}

func parseContainer(t *testing.T, d *Document) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(d.PostsHTML()))
	require.NoError(t, err)
	return doc
}

func TestRenderWithDeleteControls(t *testing.T) {
	d := DefaultDocument()
	Render(d.Container(), samplePosts, true)

	doc := parseContainer(t, d)
	posts := doc.Find("div.post")
	require.Equal(t, 2, posts.Length())

	// server order is kept
	assert.Equal(t, "Second", posts.Eq(0).Find("h2").Text())
	assert.Equal(t, "two", posts.Eq(0).Find("p").Text())
	assert.Equal(t, "First", posts.Eq(1).Find("h2").Text())

	buttons := doc.Find("button")
	require.Equal(t, 2, buttons.Length())
	assert.Equal(t, "2", buttons.Eq(0).AttrOr("data-post-id", ""))
	assert.Equal(t, "deletePost(1)", buttons.Eq(1).AttrOr("onclick", ""))
}

func TestRenderWithoutDeleteControls(t *testing.T) {
	d := DefaultDocument()
	Render(d.Container(), samplePosts, false)

	doc := parseContainer(t, d)
	assert.Equal(t, 2, doc.Find("div.post").Length())
	assert.Equal(t, 0, doc.Find("button").Length())
}

func TestRenderReplacesPriorContent(t *testing.T) {
	d := DefaultDocument()
	Render(d.Container(), samplePosts, true)
	Render(d.Container(), samplePosts[:1], true)

	doc := parseContainer(t, d)
	assert.Equal(t, 1, doc.Find("div.post").Length())

	Render(d.Container(), nil, true)
	assert.Empty(t, d.PostsHTML())
}

func TestRenderEscapesText(t *testing.T) {
	d := DefaultDocument()
	Render(d.Container(), []models.Post{{ID: 9, Title: "<script>x</script>", Content: "a & b"}}, true)

	out := d.PostsHTML()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "a &amp; b")
}

func TestRenderIsDeterministic(t *testing.T) {
	a := DefaultDocument()
	b := DefaultDocument()
	Render(a.Container(), samplePosts, true)
	Render(b.Container(), samplePosts, true)
	assert.Equal(t, a.PostsHTML(), b.PostsHTML())
}

func TestTerminalContainer(t *testing.T) {
	c := NewTerminalContainer()
	Render(c, samplePosts, true)

	require.Len(t, c.Blocks(), 2)
	id, ok := c.DeleteTarget()
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	c.MoveCursor(1)
	id, _ = c.DeleteTarget()
	assert.Equal(t, int64(1), id)

	c.MoveCursor(5)
	assert.Equal(t, 1, c.Cursor(), "cursor clamps at the last block")
	c.MoveCursor(-9)
	assert.Equal(t, 0, c.Cursor(), "cursor clamps at the first block")

	view := c.View(60, true)
	assert.Contains(t, view, "Second")
	assert.Contains(t, view, "[d] Delete")
}

func TestTerminalContainerNoDeleteControls(t *testing.T) {
	c := NewTerminalContainer()
	Render(c, samplePosts, false)

	_, ok := c.DeleteTarget()
	assert.False(t, ok, "blocks rendered without delete controls cannot be deleted")
	assert.NotContains(t, c.View(60, true), "[d] Delete")
}

func TestTerminalContainerEmpty(t *testing.T) {
	c := NewTerminalContainer()
	_, ok := c.DeleteTarget()
	assert.False(t, ok)
	assert.Contains(t, c.View(60, false), "No posts.")
}
