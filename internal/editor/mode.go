// Package editor is the modal editing core: the cursor/viewport model, the
// input state machine that turns key events into actions, and the
// controller that applies those actions to a buffer.
package editor

// Mode represents the current editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting text.
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}
