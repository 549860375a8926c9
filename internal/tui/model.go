// Package tui renders a todo.List as a Bubble Tea program.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

type focus int

// chromeLines is the height of everything around the rows when the list is
// paged: border, header, progress, blanks, add field, help and page dots.
const chromeLines = 11

// maxDots is the page count above which the pager switches to "n/m".
const maxDots = 10

const (
	focusList focus = iota
	focusAdd
	focusEdit
)

// Model is the Bubble Tea model. The list it wraps is the single source of
// truth; Model only tracks the selection and the text fields.
type Model struct {
	list  *todo.List
	theme ui.Theme
	keys  keyMap
	help  help.Model
	pager paginator.Model

	height int
	focus  focus
	cursor int
	add    textinput.Model
	edit   textinput.Model
}

// New wraps l.
func New(l *todo.List, theme ui.Theme) Model {
	add := textinput.New()
	add.Prompt = "> "
	add.Placeholder = "Add a new task..."
	add.CharLimit = 200

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 200

	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.ShortDesc = theme.Help

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = theme.Accent.Render("•")
	p.InactiveDot = theme.Muted.Render("○")
	p.ArabicFormat = "page %d/%d"

	return Model{
		list:  l,
		theme: theme,
		keys:  defaultKeys(),
		help:  h,
		pager: p,
		add:   add,
		edit:  edit,
	}
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(l *todo.List, theme ui.Theme, logger *log.Logger) error {
	logger.Debug("tui started", "items", l.Len())
	p := tea.NewProgram(New(l, theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	done, pending := l.Stats()
	logger.Debug("tui stopped", "done", done, "pending", pending)
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusAdd:
			return m.updateAdd(msg)
		case focusEdit:
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.list.Items()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Add):
		m.focus = focusAdd
		m.add.SetValue(m.list.Input())
		m.add.CursorEnd()
		cmd := m.add.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(items) && m.list.BeginEdit(items[m.cursor]) {
			m.focus = focusEdit
			m.syncEditField()
			cmd := m.edit.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(items) {
			m.list.Toggle(items[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(items) {
			m.list.Delete(items[m.cursor].ID)
			m.move(0)
		}
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.list.SetInput(m.add.Value())
		if !m.list.Submit() {
			return m, nil
		}
		m.add.SetValue("")
		m.add.Blur()
		m.focus = focusList
		m.cursor = m.list.Len() - 1
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.add.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	m.list.SetInput(m.add.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e, ok := m.list.Editing()
	if !ok {
		m.leaveEdit()
		return m.updateList(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.list.SaveEdit(e.ID) {
			m.leaveEdit()
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.list.CancelEdit()
		m.leaveEdit()
		return m, nil
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyDown:
		// switching rows moves the edit to the new row and drops the buffer
		if msg.Type == tea.KeyUp {
			m.move(-1)
		} else {
			m.move(1)
		}
		if items := m.list.Items(); m.cursor < len(items) {
			m.list.BeginEdit(items[m.cursor])
			m.syncEditField()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.list.SetEditBuffer(m.edit.Value())
	return m, cmd
}

func (m *Model) leaveEdit() {
	m.edit.Blur()
	m.focus = focusList
}

func (m *Model) syncEditField() {
	if e, ok := m.list.Editing(); ok {
		m.edit.SetValue(e.Buffer)
		m.edit.CursorEnd()
	}
}

// move shifts the selection by delta and clamps it to the list.
func (m *Model) move(delta int) {
	m.cursor += delta
	if n := m.list.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	t := m.theme
	done, pending := m.list.Stats()

	lines := []string{
		t.Header(done, pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	lines = append(lines, m.rows()...)
	lines = append(lines, "")

	if m.focus == focusAdd {
		lines = append(lines, t.Accent.Render("Add new item"), m.add.View())
	} else {
		lines = append(lines, t.Muted.Render("press a to add a task"))
	}
	lines = append(lines, "")

	if m.focus == focusList {
		lines = append(lines, m.help.View(m.keys))
	} else {
		lines = append(lines, m.help.ShortHelpView(m.keys.inputHelp()))
	}
	return t.Panel(lines...)
}

func (m Model) rows() []string {
	t := m.theme
	items := m.list.Items()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	editing := m.list.State().EditingID()
	start, end := 0, len(items)
	pager, paged := m.page(len(items))
	if paged {
		start, end = pager.GetSliceBounds(len(items))
	}
	out := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		it := items[i]
		prefix := "  "
		if i == m.cursor {
			prefix = t.Selected.Render(">") + " "
		}
		if it.ID == editing {
			out = append(out, prefix+t.Accent.Render("✎")+" "+m.edit.View())
			continue
		}
		box, text := t.Muted.Render(t.Box(false)), it.Text
		if it.Completed {
			box = t.Success.Render(t.Box(true))
			text = t.Done.Render(text)
		}
		out = append(out, strings.TrimRight(prefix+box+" "+text, " "))
	}
	if paged {
		out = append(out, pager.View())
	}
	return out
}

// page fits n rows into the window height. It reports false when the
// height is unknown or every row fits.
func (m Model) page(n int) (paginator.Model, bool) {
	if m.height <= 0 {
		return m.pager, false
	}
	per := max(m.height-chromeLines, 1)
	if n <= per {
		return m.pager, false
	}
	p := m.pager
	p.PerPage = per
	p.SetTotalPages(n)
	p.Page = min(m.cursor/per, p.TotalPages-1)
	if p.TotalPages > maxDots {
		p.Type = paginator.Arabic
	}
	return p, true
}
