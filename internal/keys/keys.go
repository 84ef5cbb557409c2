// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the Normal mode keybindings.
// Key names follow the bubbletea vocabulary ("k", "up", "ctrl+b").
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	// Editing
	Insert     key.Binding
	DeleteLine key.Binding

	// General
	Save key.Binding
	Quit key.Binding
}

// InsertKeyMap defines the Insert mode keybindings. Printable characters
// are not bound; anything unbound that prints is inserted.
type InsertKeyMap struct {
	Escape    key.Binding
	Backspace key.Binding
	Enter     key.Binding
}

// PendingKeyMap defines the keys that complete or abort a pending command.
type PendingKeyMap struct {
	DeleteLine key.Binding
	Abort      key.Binding
}

// Overrides replaces the keys of individual bindings. Empty fields keep
// the default.
type Overrides struct {
	Quit string
	Save string
}

// DefaultKeyMap returns the default Normal mode keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "move right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0/home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$/end", "line end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "page down"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert mode"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("dd", "delete line"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DefaultInsertKeyMap returns the default Insert mode keybindings.
func DefaultInsertKeyMap() InsertKeyMap {
	return InsertKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete before cursor"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
	}
}

// DefaultPendingKeyMap returns the keys that resolve a pending 'd'.
func DefaultPendingKeyMap() PendingKeyMap {
	return PendingKeyMap{
		DeleteLine: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete line"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// WithOverrides returns a copy of k with the overridden bindings rebound.
func (k KeyMap) WithOverrides(o Overrides) KeyMap {
	if o.Quit != "" {
		k.Quit = key.NewBinding(key.WithKeys(o.Quit), key.WithHelp(o.Quit, "quit"))
	}
	if o.Save != "" {
		k.Save = key.NewBinding(key.WithKeys(o.Save), key.WithHelp(o.Save, "save"))
	}
	return k
}

// ShortHelp returns the bindings shown in the status hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.DeleteLine, k.Save, k.Quit}
}

// Fixed returns the Normal mode bindings that cannot be rebound.
func (k KeyMap) Fixed() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right,
		k.LineStart, k.LineEnd, k.PageUp, k.PageDown,
		k.Insert, k.DeleteLine,
	}
}

// BoundTo returns the fixed binding that already uses name, if any.
func (k KeyMap) BoundTo(name string) (key.Binding, bool) {
	for _, b := range k.Fixed() {
		for _, bk := range b.Keys() {
			if bk == name {
				return b, true
			}
		}
	}
	return key.Binding{}, false
}
