package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/vigil/internal/keys"
	"github.com/zjrosen/vigil/internal/log"
)

// noPending marks the absence of a pending command.
const noPending rune = 0

// resolver maps a key event to at most one action.
type resolver func(ev KeyEvent) (Action, bool)

// state is a row key of the transition table: the mode plus the pending
// command prefix (noPending when none).
type state struct {
	mode    Mode
	pending rune
}

// binding pairs a key binding with the action it produces.
type binding struct {
	keys   key.Binding
	action Action
}

// InputStateMachine turns key events into actions. It owns the current
// mode and the single pending-command slot used for two-key commands
// such as "dd".
type InputStateMachine struct {
	mode    Mode
	pending rune
	table   map[state]resolver
	log     *log.Logger
}

// NewInputStateMachine builds the transition table from the keymap.
// The machine starts in Normal mode with nothing pending.
func NewInputStateMachine(km keys.KeyMap, logger *log.Logger) *InputStateMachine {
	ins := keys.DefaultInsertKeyMap()
	pend := keys.DefaultPendingKeyMap()

	normal := []binding{
		{km.Quit, act(ActionQuit)},
		{km.Save, act(ActionSave)},
		{km.Up, act(ActionMoveUp)},
		{km.Down, act(ActionMoveDown)},
		{km.Left, act(ActionMoveLeft)},
		{km.Right, act(ActionMoveRight)},
		{km.LineStart, act(ActionLineStart)},
		{km.LineEnd, act(ActionLineEnd)},
		{km.PageUp, act(ActionPageUp)},
		{km.PageDown, act(ActionPageDown)},
		{km.Insert, enterMode(ModeInsert)},
		{km.DeleteLine, setPending('d')},
	}

	pendingDelete := []binding{
		{pend.DeleteLine, act(ActionDeleteLine)},
		{pend.Abort, enterMode(ModeNormal)},
	}

	insert := []binding{
		{ins.Escape, enterMode(ModeNormal)},
		{ins.Backspace, act(ActionDeleteBefore)},
		{ins.Enter, act(ActionNewLine)},
	}

	return &InputStateMachine{
		mode: ModeNormal,
		table: map[state]resolver{
			{ModeNormal, noPending}: lookup(normal),
			{ModeNormal, 'd'}:       lookup(pendingDelete),
			{ModeInsert, noPending}: withPrintable(lookup(insert)),
		},
		log: logger,
	}
}

// lookup resolves a key by the first matching binding.
func lookup(bindings []binding) resolver {
	return func(ev KeyEvent) (Action, bool) {
		for _, b := range bindings {
			if key.Matches(ev, b.keys) {
				return b.action, true
			}
		}
		return Action{}, false
	}
}

// withPrintable falls back to inserting printable characters.
func withPrintable(next resolver) resolver {
	return func(ev KeyEvent) (Action, bool) {
		if a, ok := next(ev); ok {
			return a, true
		}
		if ev.Printable() {
			return insertChar(ev.Rune), true
		}
		return Action{}, false
	}
}

// Mode returns the current mode.
func (m *InputStateMachine) Mode() Mode {
	return m.mode
}

// Pending returns the pending command prefix, or 0 when there is none.
func (m *InputStateMachine) Pending() rune {
	return m.pending
}

// Handle resolves one key event. A pending command is always cleared by
// the event that follows it, whether or not that event completes it.
// Mode switches and new pending prefixes take effect before the action is
// returned. Unbound keys resolve to nothing.
func (m *InputStateMachine) Handle(ev KeyEvent) (Action, bool) {
	current := state{mode: m.mode, pending: m.pending}
	if m.pending != noPending {
		m.log.Debug(log.CatInput, "Resolving pending command", "op", string(m.pending), "key", ev.String())
		m.pending = noPending
	}

	resolve, ok := m.table[current]
	if !ok {
		return Action{}, false
	}
	a, ok := resolve(ev)
	if !ok {
		return Action{}, false
	}

	switch a.Kind {
	case ActionEnterMode:
		if a.Mode != m.mode {
			m.log.Debug(log.CatInput, "Mode change", "from", m.mode, "to", a.Mode)
		}
		m.mode = a.Mode
	case ActionSetPending:
		m.pending = a.Char
	}
	return a, true
}
