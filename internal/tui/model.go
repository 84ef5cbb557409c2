// Package tui runs the editor as a bubbletea program.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/vigil/internal/config"
	"github.com/zjrosen/vigil/internal/editor"
	"github.com/zjrosen/vigil/internal/keys"
	"github.com/zjrosen/vigil/internal/log"
)

// Options configures the model.
type Options struct {
	Theme       config.ThemeConfig
	ShowChanges bool
	ShowHelp    bool
	KeyMap      keys.KeyMap
	// Changes receives a value whenever the open file is written by
	// another program. May be nil.
	Changes <-chan struct{}
	Logger  *log.Logger
}

// fileChangedMsg is sent when the watcher reports a change on disk.
type fileChangedMsg struct{}

// Model adapts an editor.Controller to bubbletea.
type Model struct {
	ctl    *editor.Controller
	styles styles
	opts   Options
	help   help.Model
	log    *log.Logger
}

// New creates a model driving ctl.
func New(ctl *editor.Controller, opts Options) Model {
	return Model{
		ctl:    ctl,
		styles: newStyles(opts.Theme),
		opts:   opts,
		help:   help.New(),
		log:    opts.Logger,
	}
}

// Controller returns the wrapped controller.
func (m Model) Controller() *editor.Controller {
	return m.ctl
}

// Init starts listening for file changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.opts.Changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update translates messages into editor events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handle(editor.ResizeEvent{Width: msg.Width, Height: msg.Height})
		m.help.Width = msg.Width
		return m, nil

	case fileChangedMsg:
		m.handle(editor.ExternalChangeEvent{})
		return m, waitForChange(m.opts.Changes)

	case tea.KeyMsg:
		for _, ev := range keyEvents(msg) {
			if m.handle(ev).Quit {
				return m, tea.Quit
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handle(ev editor.Event) editor.Result {
	res, err := m.ctl.Handle(ev)
	if err != nil {
		// Save failures are already on the message line.
		var saveErr *editor.SaveError
		if !errors.As(err, &saveErr) {
			m.log.ErrorErr(log.CatTerm, "Handling event", err)
		}
	}
	m.ctl.Clamp()
	return res
}

// View renders the content rows, the status line, and the message line.
func (m Model) View() string {
	f := m.ctl.Frame()
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}

	lines := make([]string, 0, f.Height)
	for y, row := range f.Rows {
		if y == f.CursorY {
			row = m.withCursor(row, f.CursorX, f.Cursor)
		}
		lines = append(lines, row)
	}
	if f.Height > len(lines) {
		lines = append(lines, m.statusLine(f))
	}
	if f.Height > len(lines) {
		lines = append(lines, m.messageLine(f))
	}
	return strings.Join(lines, "\n")
}

// withCursor styles the grapheme cluster starting at cell x.
func (m Model) withCursor(row string, x int, shape editor.CursorShape) string {
	style := m.styles.cursorBlock
	if shape == editor.CursorUnderline {
		style = m.styles.cursorUnderline
	}

	cell := 0
	state := -1
	rest := row
	for len(rest) > 0 {
		cluster, next, w, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		if cell == x {
			head := row[:len(row)-len(rest)]
			return head + style.Render(cluster) + next
		}
		cell += w
		rest, state = next, newState
	}
	return row
}

func (m Model) statusLine(f editor.Frame) string {
	mode, file, right := f.Status.Layout(f.Width, m.opts.ShowChanges)
	line := m.styles.mode.Render(mode) + m.styles.bar.Render(file+right)
	return ansi.Truncate(line, f.Width, "")
}

func (m Model) messageLine(f editor.Frame) string {
	msg := f.Status.Message
	if msg == "" && m.opts.ShowHelp && m.ctl.Mode() == editor.ModeNormal {
		return ansi.Truncate(m.help.ShortHelpView(m.opts.KeyMap.ShortHelp()), f.Width, "")
	}
	return ansi.Truncate(msg, f.Width, "…")
}

// Run starts a full-screen program and blocks until the user quits.
// bubbletea restores the terminal on exit and on panic.
func Run(ctl *editor.Controller, opts Options, progOpts ...tea.ProgramOption) error {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(New(ctl, opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal program: %w", err)
	}
	return nil
}
