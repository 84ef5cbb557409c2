// Package terminal runs the editor on a tcell screen with a blocking event
// loop.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/vigil/internal/config"
	"github.com/zjrosen/vigil/internal/editor"
	"github.com/zjrosen/vigil/internal/log"
)

// fileChanged is the payload of the interrupt posted by NotifyFileChanged.
type fileChanged struct{}

// Screen adapts a tcell.Screen to editor.EventSource and editor.Renderer.
type Screen struct {
	screen      tcell.Screen
	styles      styles
	showChanges bool
	log         *log.Logger
}

// Options configures a Screen.
type Options struct {
	Theme       config.ThemeConfig
	ShowChanges bool
	Logger      *log.Logger
}

// New wraps an initialized tcell screen.
func New(s tcell.Screen, opts Options) *Screen {
	return &Screen{
		screen:      s,
		styles:      newStyles(opts.Theme),
		showChanges: opts.ShowChanges,
		log:         opts.Logger,
	}
}

// NotifyFileChanged wakes PollEvent with an editor.ExternalChangeEvent.
// Safe to call from any goroutine.
func (s *Screen) NotifyFileChanged() {
	if err := s.screen.PostEvent(tcell.NewEventInterrupt(fileChanged{})); err != nil {
		s.log.Warn(log.CatTerm, "Dropped file change notification", "error", err)
	}
}

// PollEvent blocks until the next event the editor cares about. Once the
// screen is finalized it returns editor.ErrSourceClosed.
func (s *Screen) PollEvent() (editor.Event, error) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return nil, editor.ErrSourceClosed
		case *tcell.EventKey:
			if kev, ok := keyEvent(ev); ok {
				return kev, nil
			}
			s.log.Debug(log.CatTerm, "Ignoring key", "name", ev.Name())
		case *tcell.EventResize:
			w, h := ev.Size()
			s.screen.Sync()
			return editor.ResizeEvent{Width: w, Height: h}, nil
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(fileChanged); ok {
				return editor.ExternalChangeEvent{}, nil
			}
		}
	}
}

// Render paints the whole frame and positions the cursor.
func (s *Screen) Render(f editor.Frame) error {
	s.screen.Clear()

	for y, row := range f.Rows {
		s.drawText(0, y, f.Width, row, tcell.StyleDefault)
	}

	y := len(f.Rows)
	if y < f.Height {
		mode, file, right := f.Status.Layout(f.Width, s.showChanges)
		x := s.drawText(0, y, f.Width, mode, s.styles.mode)
		s.drawText(x, y, f.Width, file+right, s.styles.bar)
		y++
	}
	if y < f.Height {
		s.drawText(0, y, f.Width, f.Status.Message, tcell.StyleDefault)
	}

	s.screen.SetCursorStyle(cursorStyles[f.Cursor])
	s.screen.ShowCursor(f.CursorX, f.CursorY)
	s.screen.Show()
	return nil
}

// RenderRow repaints one content row.
func (s *Screen) RenderRow(y int, row string) error {
	w, _ := s.screen.Size()
	s.drawText(0, y, w, row, tcell.StyleDefault)
	s.screen.Show()
	return nil
}

// drawText writes text from column x, one grapheme cluster per cell group,
// stopping at maxX. It returns the column after the last cell written.
func (s *Screen) drawText(x, y, maxX int, text string, style tcell.Style) int {
	state := -1
	for len(text) > 0 {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(text, state)
		if x+w > maxX {
			break
		}
		runes := []rune(cluster)
		s.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
		text, state = rest, newState
	}
	return x
}

var cursorStyles = map[editor.CursorShape]tcell.CursorStyle{
	editor.CursorBlock:     tcell.CursorStyleSteadyBlock,
	editor.CursorBar:       tcell.CursorStyleSteadyBar,
	editor.CursorUnderline: tcell.CursorStyleSteadyUnderline,
}

var specialKeys = map[tcell.Key]editor.KeyCode{
	tcell.KeyEscape:     editor.KeyEsc,
	tcell.KeyEnter:      editor.KeyEnter,
	tcell.KeyBackspace:  editor.KeyBackspace,
	tcell.KeyBackspace2: editor.KeyBackspace,
	tcell.KeyTab:        editor.KeyTab,
	tcell.KeyDelete:     editor.KeyDelete,
	tcell.KeyUp:         editor.KeyUp,
	tcell.KeyDown:       editor.KeyDown,
	tcell.KeyLeft:       editor.KeyLeft,
	tcell.KeyRight:      editor.KeyRight,
	tcell.KeyHome:       editor.KeyHome,
	tcell.KeyEnd:        editor.KeyEnd,
	tcell.KeyPgUp:       editor.KeyPgUp,
	tcell.KeyPgDn:       editor.KeyPgDown,
}

// keyEvent translates a tcell key. Backspace, Tab, Enter and Escape share
// codes with ctrl+letter, so named keys are checked first.
func keyEvent(ev *tcell.EventKey) (editor.KeyEvent, bool) {
	var mod editor.Modifier
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= editor.ModAlt
	}

	if code, ok := specialKeys[ev.Key()]; ok {
		if ev.Modifiers()&tcell.ModShift != 0 {
			mod |= editor.ModShift
		}
		return editor.KeyEvent{Code: code, Mod: mod}, true
	}

	switch k := ev.Key(); {
	case k == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0:
		kev := editor.Ctrl(ev.Rune())
		kev.Mod |= mod
		return kev, true
	case k == tcell.KeyRune:
		return editor.KeyEvent{Code: editor.KeyRune, Rune: ev.Rune(), Mod: mod}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		kev := editor.Ctrl(rune('a' + (k - tcell.KeyCtrlA)))
		kev.Mod |= mod
		return kev, true
	}
	return editor.KeyEvent{}, false
}
