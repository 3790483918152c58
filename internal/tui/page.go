// ABOUTME: Terminal page: the named input fields and post container for the interactive UI.
// ABOUTME: Implements render.Page over bubbles text inputs and a terminal container.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/render"
)

// fieldLabels are shown next to each input.
var fieldLabels = map[render.Field]string{
	render.FieldBaseURL:       "API base URL",
	render.FieldPostTitle:     "Title",
	render.FieldPostContent:   "Content",
	render.FieldSearchTitle:   "Search title",
	render.FieldSearchContent: "Search content",
	render.FieldSortField:     "Sort field",
	render.FieldSortDirection: "Direction",
}

var fieldPlaceholders = map[render.Field]string{
	render.FieldBaseURL:       "http://localhost:5002/api",
	render.FieldPostTitle:     "post title",
	render.FieldPostContent:   "post content",
	render.FieldSearchTitle:   "text in title",
	render.FieldSearchContent: "text in content",
	render.FieldSortField:     string(models.SortByTitle) + " | " + string(models.SortByContent),
	render.FieldSortDirection: string(models.SortAscending) + " | " + string(models.SortDescending),
}

// Page holds the inputs and container shared by the model and the controller.
// It is only touched from the bubbletea update loop.
type Page struct {
	inputs    []textinput.Model
	container *render.TerminalContainer
}

// NewPage creates a page with one input per render.Fields entry.
// Sort inputs start at the first accepted value, like a select element.
func NewPage() *Page {
	p := &Page{
		inputs:    make([]textinput.Model, len(render.Fields)),
		container: render.NewTerminalContainer(),
	}
	for i, f := range render.Fields {
		in := textinput.New()
		in.Placeholder = fieldPlaceholders[f]
		in.Width = 50
		in.Prompt = ""
		p.inputs[i] = in
	}
	p.SetValue(render.FieldSortField, string(models.SortFields[0]))
	p.SetValue(render.FieldSortDirection, string(models.SortDirections[0]))
	return p
}

// Value returns the text of field f.
func (p *Page) Value(f render.Field) string {
	if i := fieldIndex(f); i >= 0 {
		return p.inputs[i].Value()
	}
	return ""
}

// SetValue replaces the text of field f.
func (p *Page) SetValue(f render.Field, v string) {
	if i := fieldIndex(f); i >= 0 {
		p.inputs[i].SetValue(v)
	}
}

// Container returns the post container.
func (p *Page) Container() render.Container {
	return p.container
}

// Posts returns the concrete terminal container.
func (p *Page) Posts() *render.TerminalContainer {
	return p.container
}

func fieldIndex(f render.Field) int {
	for i, candidate := range render.Fields {
		if candidate == f {
			return i
		}
	}
	return -1
}
