package editor

import (
	"strings"
	"unicode"
)

// Event is one discrete input from the terminal: a key press, a resize, or
// a notice that the file changed on disk.
type Event interface {
	isEvent()
}

// KeyCode identifies the logical key of a KeyEvent.
type KeyCode int

const (
	// KeyRune is a character key; the character is in KeyEvent.Rune.
	KeyRune KeyCode = iota
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyTab
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
)

var keyNames = map[KeyCode]string{
	KeyEsc:       "esc",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a key press.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Mod  Modifier
}

// ResizeEvent carries the new terminal size in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// ExternalChangeEvent signals that the file backing the buffer was written
// by something else.
type ExternalChangeEvent struct{}

func (KeyEvent) isEvent()            {}
func (ResizeEvent) isEvent()         {}
func (ExternalChangeEvent) isEvent() {}

// Key returns the event for an unmodified character key.
func Key(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r}
}

// Ctrl returns the event for a control-modified character key.
func Ctrl(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: unicode.ToLower(r), Mod: ModCtrl}
}

// Special returns the event for a non-character key.
func Special(code KeyCode) KeyEvent {
	return KeyEvent{Code: code}
}

// String renders the key the way bubbletea names keys ("k", "ctrl+b",
// "alt+x", "up", "shift+left"), so key.Binding matching works on it.
func (k KeyEvent) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Code == KeyRune {
		b.WriteRune(k.Rune)
		return b.String()
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	b.WriteString(keyNames[k.Code])
	return b.String()
}

// Printable reports whether the key types a character into the buffer.
func (k KeyEvent) Printable() bool {
	return k.Code == KeyRune && k.Mod&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(k.Rune)
}
