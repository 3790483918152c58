// ABOUTME: Interactive bubbletea model driving the post controller from the terminal page.
// ABOUTME: Actions run as commands; their completions are applied back on the update loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/postboard/internal/controller"
	"github.com/2389-research/postboard/internal/logging"
	"github.com/2389-research/postboard/internal/render"
)

// consoleLines is how many diagnostic lines the page shows.
const consoleLines = 5

// completionMsg carries a finished action back to the update loop.
type completionMsg struct {
	action   string
	complete controller.Completion
}

// runState is shared across model copies. Value-receiver methods (required by
// tea.Model) must see the same context and in-flight count.
type runState struct {
	ctx      context.Context
	cancel   context.CancelFunc
	inflight int
}

// AppModel is the bubbletea model for the interactive page.
type AppModel struct {
	page     *Page
	ctrl     *controller.Controller
	console  *logging.Console
	run      *runState
	spinner  spinner.Model
	focus    int // index into page inputs; len(inputs) means the post list
	width    int
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(16)
	focusStyle   = labelStyle.Foreground(lipgloss.Color("212"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	consoleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

// NewAppModel creates the page model. ctrl must have been built over page.
func NewAppModel(page *Page, ctrl *controller.Controller, console *logging.Console) AppModel {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := AppModel{
		page:    page,
		ctrl:    ctrl,
		console: console,
		run:     &runState{ctx: ctx, cancel: cancel},
		spinner: s,
	}
	m.page.inputs[0].Focus()
	return m
}

// Init restores the saved address and, if there was one, loads posts.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.dispatch("load", m.ctrl.Restore()))
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			m.run.cancel()
			return m, tea.Quit
		case tea.KeyTab:
			return m.moveFocus(1)
		case tea.KeyShiftTab:
			return m.moveFocus(-1)
		case tea.KeyCtrlR:
			return m, m.dispatch("load", m.ctrl.Load())
		}
		if m.focus == len(m.page.inputs) {
			return m.updateList(msg)
		}
		return m.updateInput(msg)

	case completionMsg:
		m.run.inflight--
		next, _ := msg.complete()
		return m, m.dispatch(msg.action, next)

	case spinner.TickMsg:
		if m.run.inflight > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m AppModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name, action := m.actionFor(render.Fields[m.focus])
		return m, m.dispatch(name, action)
	}

	var cmd tea.Cmd
	m.page.inputs[m.focus], cmd = m.page.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := m.page.Posts()
	switch msg.String() {
	case "up", "k":
		posts.MoveCursor(-1)
	case "down", "j":
		posts.MoveCursor(1)
	case "d", "delete":
		if id, ok := posts.DeleteTarget(); ok {
			return m, m.dispatch("delete", m.ctrl.Delete(id))
		}
	case "r":
		return m, m.dispatch("load", m.ctrl.Load())
	}
	return m, nil
}

// actionFor maps the focused input to the button next to it on the page.
func (m AppModel) actionFor(f render.Field) (string, controller.Action) {
	switch f {
	case render.FieldPostTitle, render.FieldPostContent:
		return "add", m.ctrl.Add()
	case render.FieldSearchTitle, render.FieldSearchContent:
		return "search", m.ctrl.Search()
	case render.FieldSortField, render.FieldSortDirection:
		return "sort", m.ctrl.Sort()
	default:
		return "load", m.ctrl.Load()
	}
}

func (m AppModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.page.inputs) + 1
	if m.focus < len(m.page.inputs) {
		m.page.inputs[m.focus].Blur()
	}
	m.focus = ((m.focus+delta)%n + n) % n
	if m.focus < len(m.page.inputs) {
		m.page.inputs[m.focus].Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// dispatch schedules a as a command. Nothing is cancelled when another
// action starts; completions arrive in whatever order the network allows.
func (m AppModel) dispatch(name string, a controller.Action) tea.Cmd {
	if a == nil {
		return nil
	}
	m.run.inflight++
	ctx := m.run.ctx
	run := func() tea.Msg {
		return completionMsg{action: name, complete: a(ctx)}
	}
	if m.run.inflight == 1 {
		return tea.Batch(run, m.spinner.Tick)
	}
	return run
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   POSTBOARD"))
	b.WriteString(titleStyle.Render(" - Posts"))
	b.WriteString("\n\n")

	for i, f := range render.Fields {
		style := labelStyle
		if i == m.focus {
			style = focusStyle
		}
		b.WriteString(style.Render(fieldLabels[f]))
		b.WriteString(m.page.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render(promptStyle.Render(
		"[enter] run action  [tab] next field  [ctrl+r] load  list: [j/k] move  [d] delete  [esc] quit")))
	b.WriteString("\n")

	if m.run.inflight > 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" %d request(s) in flight", m.run.inflight))
	}
	b.WriteString("\n")

	b.WriteString(m.page.Posts().View(m.width, m.focus == len(m.page.inputs)))
	b.WriteString("\n")

	if m.console != nil {
		if lines := m.console.Tail(consoleLines); len(lines) > 0 {
			b.WriteString(sectionStyle.Render(consoleStyle.Render(strings.Join(lines, "\n"))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Focus returns the focused index: an input index, or the input count for the post list.
func (m AppModel) Focus() int {
	return m.focus
}

// InFlight returns how many actions are awaiting completion.
func (m AppModel) InFlight() int {
	return m.run.inflight
}
