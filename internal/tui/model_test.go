package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vigil/internal/buffer"
	"github.com/zjrosen/vigil/internal/config"
	"github.com/zjrosen/vigil/internal/editor"
	"github.com/zjrosen/vigil/internal/keys"
)

func init() {
	// Plain text output so views can be compared directly.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newModel(t *testing.T, width, height int, lines ...string) Model {
	t.Helper()
	ctl := editor.New(buffer.New("", lines), 0, 0)
	m := New(ctl, Options{
		Theme:       config.Defaults().Theme,
		ShowChanges: true,
		KeyMap:      keys.DefaultKeyMap(),
	})
	return update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_BeforeFirstResize(t *testing.T) {
	m := New(editor.New(buffer.New("", []string{"a"}), 0, 0), Options{})
	require.Empty(t, m.View())
}

func TestView_Layout(t *testing.T) {
	m := newModel(t, 30, 4, "hello", "world")

	want := strings.Join([]string{
		"hello                         ",
		"world                         ",
		" NORMAL  No Name          1:1 ",
		"",
	}, "\n")
	require.Equal(t, want, m.View())
}

func TestView_ModifiedWithChanges(t *testing.T) {
	m := newModel(t, 40, 3, "hello")

	m = update(t, m, runes("i"), runes("X"))

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Xhello"+strings.Repeat(" ", 34), lines[0])
	require.Equal(t, " INSERT "+" No Name [+]"+strings.Repeat(" ", 9)+"+1 -1  2:1 ", lines[1])
}

func TestView_NarrowStatusLineFits(t *testing.T) {
	m := newModel(t, 10, 3, "a")

	lines := strings.Split(m.View(), "\n")
	require.LessOrEqual(t, ansi.StringWidth(lines[1]), 10)
}

func TestView_MessageLine(t *testing.T) {
	m := newModel(t, 30, 3, "a")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	lines := strings.Split(m.View(), "\n")
	require.Equal(t, "no file name", lines[2])
}

func TestView_HelpHint(t *testing.T) {
	ctl := editor.New(buffer.New("", []string{"a"}), 0, 0)
	m := New(ctl, Options{ShowHelp: true, KeyMap: keys.DefaultKeyMap()})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 3})

	lines := strings.Split(m.View(), "\n")
	require.Contains(t, lines[2], "i insert mode")

	m = update(t, m, runes("i"))
	lines = strings.Split(m.View(), "\n")
	require.Empty(t, lines[2], "no hint while inserting")
}

func TestWithCursor(t *testing.T) {
	m := newModel(t, 10, 3)
	m.styles.cursorBlock = lipgloss.NewStyle().Transform(func(s string) string {
		return "[" + s + "]"
	})

	require.Equal(t, "[a]世b ", m.withCursor("a世b ", 0, editor.CursorBlock))
	require.Equal(t, "a[世]b ", m.withCursor("a世b ", 1, editor.CursorBlock))
	require.Equal(t, "a世[b] ", m.withCursor("a世b ", 3, editor.CursorBlock))
	require.Equal(t, "a世b ", m.withCursor("a世b ", 2, editor.CursorBlock), "inside a wide cell")
}

func TestUpdate_QuitCommand(t *testing.T) {
	m := newModel(t, 30, 4, "a")

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_PasteInsertsEveryRune(t *testing.T) {
	m := newModel(t, 30, 4, "")

	m = update(t, m, runes("i"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo"), Paste: true})

	require.Equal(t, []string{"héllo"}, m.Controller().Buffer().Lines())
}

func TestUpdate_FileChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	buf, err := buffer.Load(path)
	require.NoError(t, err)

	changes := make(chan struct{}, 1)
	m := New(editor.New(buf, 0, 0), Options{Changes: changes})
	require.NotNil(t, m.Init())

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	next, cmd := m.Update(fileChangedMsg{})

	require.NotNil(t, cmd, "keeps listening")
	require.Equal(t, `"a.txt" changed on disk`, next.(Model).Controller().Message())
}

func TestInit_NoWatcher(t *testing.T) {
	m := New(editor.New(buffer.New("", nil), 0, 0), Options{})
	require.Nil(t, m.Init())
}

func TestProgram_EditAndQuit(t *testing.T) {
	ctl := editor.New(buffer.New("", nil), 0, 0)
	tm := teatest.NewTestModel(t, New(ctl, Options{KeyMap: keys.DefaultKeyMap()}), teatest.WithInitialTermSize(40, 10))

	tm.Type("ihi")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("INSERT"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Type("q")
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, []string{"hi"}, final.Controller().Buffer().Lines())
	require.Equal(t, editor.ModeNormal, final.Controller().Mode())
}

func TestProgram_ReportsExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	buf, err := buffer.Load(path)
	require.NoError(t, err)

	changes := make(chan struct{}, 1)
	tm := teatest.NewTestModel(t, New(editor.New(buf, 0, 0), Options{Changes: changes}), teatest.WithInitialTermSize(60, 5))
	t.Cleanup(func() { _ = tm.Quit() })

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	changes <- struct{}{}

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("changed on disk"))
	}, teatest.WithDuration(2*time.Second))
}
