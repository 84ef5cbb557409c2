package editor

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionSave
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionLineStart
	ActionLineEnd
	ActionPageUp
	ActionPageDown
	ActionEnterMode
	ActionInsertChar
	ActionDeleteBefore
	ActionNewLine
	ActionSetPending
	ActionDeleteLine
)

var actionIDs = map[ActionKind]string{
	ActionNone:         "none",
	ActionQuit:         "app.quit",
	ActionSave:         "file.save",
	ActionMoveUp:       "move.up",
	ActionMoveDown:     "move.down",
	ActionMoveLeft:     "move.left",
	ActionMoveRight:    "move.right",
	ActionLineStart:    "move.line_start",
	ActionLineEnd:      "move.line_end",
	ActionPageUp:       "scroll.page_up",
	ActionPageDown:     "scroll.page_down",
	ActionEnterMode:    "mode.enter",
	ActionInsertChar:   "insert.char",
	ActionDeleteBefore: "delete.before",
	ActionNewLine:      "insert.newline",
	ActionSetPending:   "pending.set",
	ActionDeleteLine:   "delete.line",
}

// Action is a high-level editing command resolved from one input event.
// Char is set for ActionInsertChar and ActionSetPending, Mode for
// ActionEnterMode.
type Action struct {
	Kind ActionKind
	Char rune
	Mode Mode
}

// ID returns a hierarchical identifier such as "move.up", for logging.
func (a Action) ID() string {
	if id, ok := actionIDs[a.Kind]; ok {
		return id
	}
	return "unknown"
}

func act(kind ActionKind) Action {
	return Action{Kind: kind}
}

func enterMode(m Mode) Action {
	return Action{Kind: ActionEnterMode, Mode: m}
}

func insertChar(ch rune) Action {
	return Action{Kind: ActionInsertChar, Char: ch}
}

func setPending(op rune) Action {
	return Action{Kind: ActionSetPending, Char: op}
}
