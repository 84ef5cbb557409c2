package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vigil/internal/editor"
)

var specialKeys = map[tea.KeyType]editor.KeyCode{
	tea.KeyEsc:       editor.KeyEsc,
	tea.KeyEnter:     editor.KeyEnter,
	tea.KeyBackspace: editor.KeyBackspace,
	tea.KeyTab:       editor.KeyTab,
	tea.KeyDelete:    editor.KeyDelete,
	tea.KeyUp:        editor.KeyUp,
	tea.KeyDown:      editor.KeyDown,
	tea.KeyLeft:      editor.KeyLeft,
	tea.KeyRight:     editor.KeyRight,
	tea.KeyHome:      editor.KeyHome,
	tea.KeyEnd:       editor.KeyEnd,
	tea.KeyPgUp:      editor.KeyPgUp,
	tea.KeyPgDown:    editor.KeyPgDown,
}

var shiftedKeys = map[tea.KeyType]editor.KeyCode{
	tea.KeyShiftUp:    editor.KeyUp,
	tea.KeyShiftDown:  editor.KeyDown,
	tea.KeyShiftLeft:  editor.KeyLeft,
	tea.KeyShiftRight: editor.KeyRight,
	tea.KeyShiftHome:  editor.KeyHome,
	tea.KeyShiftEnd:   editor.KeyEnd,
}

// keyEvents translates a bubbletea key message. Pasted text arrives as one
// message and becomes one event per character.
func keyEvents(msg tea.KeyMsg) []editor.KeyEvent {
	var mod editor.Modifier
	if msg.Alt {
		mod |= editor.ModAlt
	}

	// Named keys first: several of them share codes with ctrl+letter.
	if code, ok := specialKeys[msg.Type]; ok {
		return []editor.KeyEvent{{Code: code, Mod: mod}}
	}
	if code, ok := shiftedKeys[msg.Type]; ok {
		return []editor.KeyEvent{{Code: code, Mod: mod | editor.ModShift}}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []editor.KeyEvent{{Code: editor.KeyRune, Rune: ' ', Mod: mod}}
	case tea.KeyRunes:
		events := make([]editor.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, editor.KeyEvent{Code: editor.KeyRune, Rune: r, Mod: mod})
		}
		return events
	}

	// ctrl+letter and friends are only distinguishable by name.
	name := strings.TrimPrefix(msg.String(), "alt+")
	if letter, ok := strings.CutPrefix(name, "ctrl+"); ok && len(letter) == 1 {
		ev := editor.Ctrl(rune(letter[0]))
		ev.Mod |= mod
		return []editor.KeyEvent{ev}
	}
	return nil
}
