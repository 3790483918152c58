// ABOUTME: Terminal container that keeps rendered blocks for the interactive page.
// ABOUTME: Tracks a selection cursor and draws blocks with lipgloss.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	postTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	postBodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	deleteHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	blockStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).PaddingLeft(1)
	selectedStyle = blockStyle.BorderForeground(lipgloss.Color("212"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// TerminalContainer holds the current blocks and a cursor over them.
type TerminalContainer struct {
	blocks []Block
	cursor int
}

// NewTerminalContainer returns an empty container.
func NewTerminalContainer() *TerminalContainer {
	return &TerminalContainer{}
}

// Clear drops every block and resets the cursor.
func (c *TerminalContainer) Clear() {
	c.blocks = nil
	c.cursor = 0
}

// Append adds b after the existing blocks.
func (c *TerminalContainer) Append(b Block) {
	c.blocks = append(c.blocks, b)
}

// Blocks returns a copy of the current blocks.
func (c *TerminalContainer) Blocks() []Block {
	return append([]Block(nil), c.blocks...)
}

// Cursor returns the index of the selected block.
func (c *TerminalContainer) Cursor() int {
	return c.cursor
}

// MoveCursor shifts the selection by delta, clamped to the block range.
func (c *TerminalContainer) MoveCursor(delta int) {
	c.cursor += delta
	if c.cursor >= len(c.blocks) {
		c.cursor = len(c.blocks) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// DeleteTarget returns the id behind the selected block's delete control.
// Blocks rendered without a delete control yield false.
func (c *TerminalContainer) DeleteTarget() (int64, bool) {
	if c.cursor < 0 || c.cursor >= len(c.blocks) {
		return 0, false
	}
	b := c.blocks[c.cursor]
	if !b.Deletable {
		return 0, false
	}
	return b.Post.ID, true
}

// View draws the blocks, highlighting the selected one when focused.
func (c *TerminalContainer) View(width int, focused bool) string {
	if len(c.blocks) == 0 {
		return emptyStyle.Render("No posts.")
	}

	var b strings.Builder
	for i, block := range c.blocks {
		var body strings.Builder
		body.WriteString(postTitleStyle.Render(block.Post.Title))
		body.WriteString("\n")
		body.WriteString(postBodyStyle.Render(block.Post.Content))
		if block.Deletable {
			body.WriteString("\n")
			body.WriteString(deleteHintStyle.Render("[d] Delete"))
		}

		style := blockStyle
		if focused && i == c.cursor {
			style = selectedStyle
		}
		if width > 4 {
			style = style.Width(width - 2)
		}
		b.WriteString(style.Render(body.String()))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
