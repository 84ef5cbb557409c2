package editor

import (
	"fmt"

	"github.com/zjrosen/vigil/internal/buffer"
	"github.com/zjrosen/vigil/internal/keys"
	"github.com/zjrosen/vigil/internal/log"
)

// SaveError is returned by Handle when writing the buffer fails. The
// buffer is untouched, so the save can be retried.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save failed: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Result describes what handling one event did.
type Result struct {
	// Quit is set when the user asked to leave.
	Quit bool
	// Dirty lists content rows whose text changed in place and can be
	// redrawn on their own.
	Dirty []int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithKeyMap replaces the Normal mode keybindings.
func WithKeyMap(km keys.KeyMap) Option {
	return func(c *Controller) {
		c.keymap = km
	}
}

// Controller owns the buffer, the viewport and the input state machine and
// applies one action per input event. It is used from a single goroutine.
type Controller struct {
	buf     *buffer.Buffer
	view    Viewport
	input   *InputStateMachine
	keymap  keys.KeyMap
	log     *log.Logger
	message string
}

// New creates a controller editing buf on a screen of the given size.
func New(buf *buffer.Buffer, width, height int, opts ...Option) *Controller {
	c := &Controller{
		buf:    buf,
		view:   NewViewport(width, height),
		keymap: keys.DefaultKeyMap(),
		log:    log.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.input = NewInputStateMachine(c.keymap, c.log)
	return c
}

// Buffer returns the edited buffer.
func (c *Controller) Buffer() *buffer.Buffer {
	return c.buf
}

// Viewport returns a copy of the cursor/viewport state.
func (c *Controller) Viewport() Viewport {
	return c.view
}

// Mode returns the current editing mode.
func (c *Controller) Mode() Mode {
	return c.input.Mode()
}

// Pending returns the pending command prefix, or 0.
func (c *Controller) Pending() rune {
	return c.input.Pending()
}

// Message returns the text shown on the message line.
func (c *Controller) Message() string {
	return c.message
}

// Clamp reconciles the cursor with the buffer after a mutation.
func (c *Controller) Clamp() {
	c.view.ClampToBuffer(c.buf)
}

// Handle processes one input event. Resize and external-change events are
// dealt with before mode dispatch and never produce an action. Key events
// resolve to at most one action, which is applied. The only error is a
// *SaveError.
func (c *Controller) Handle(ev Event) (Result, error) {
	switch ev := ev.(type) {
	case ResizeEvent:
		c.view.SetSize(ev.Width, ev.Height)
		c.log.Debug(log.CatEditor, "Resize", "width", ev.Width, "height", ev.Height)
		return Result{}, nil
	case ExternalChangeEvent:
		c.checkDisk()
		return Result{}, nil
	case KeyEvent:
		a, ok := c.input.Handle(ev)
		if !ok {
			return Result{}, nil
		}
		c.message = ""
		return c.apply(a)
	default:
		return Result{}, nil
	}
}

// apply mutates buffer and viewport for one action.
func (c *Controller) apply(a Action) (Result, error) {
	c.log.Debug(log.CatEditor, "Apply", "action", a.ID(), "line", c.view.AbsoluteLine(), "col", c.view.cx)

	switch a.Kind {
	case ActionQuit:
		return Result{Quit: true}, nil
	case ActionSave:
		return Result{}, c.save()
	case ActionMoveUp:
		c.view.MoveUp()
	case ActionMoveDown:
		c.view.MoveDown()
	case ActionMoveLeft:
		c.view.MoveLeft()
	case ActionMoveRight:
		c.view.MoveRight()
	case ActionLineStart:
		c.view.ToLineStart()
	case ActionLineEnd:
		c.view.ToLineEnd(c.buf)
	case ActionPageUp:
		c.view.PageUp()
	case ActionPageDown:
		c.view.PageDown(c.buf)
	case ActionInsertChar:
		return c.insertChar(a.Char), nil
	case ActionDeleteBefore:
		return c.deleteBefore(), nil
	case ActionNewLine:
		c.buf.SplitLine(c.view.cx, c.view.AbsoluteLine())
		c.view.MoveDown()
		c.view.ToLineStart()
	case ActionDeleteLine:
		c.buf.RemoveLine(c.view.AbsoluteLine())
	case ActionEnterMode, ActionSetPending:
		// Already applied by the input state machine.
	}
	return Result{}, nil
}

func (c *Controller) insertChar(ch rune) Result {
	c.buf.InsertChar(c.view.cx, c.view.AbsoluteLine(), ch)
	c.view.cx++
	return Result{Dirty: []int{c.view.cy}}
}

// deleteBefore is Backspace: remove the character left of the cursor, or
// at column 0 move to the end of the previous line and remove its last
// character. Lines are never joined.
func (c *Controller) deleteBefore() Result {
	if c.view.cx > 0 {
		c.view.cx--
		c.buf.RemoveChar(c.view.cx, c.view.AbsoluteLine())
		return Result{Dirty: []int{c.view.cy}}
	}
	if c.view.AbsoluteLine() == 0 {
		return Result{}
	}

	c.view.MoveUp()
	c.view.cx = c.buf.LineLen(c.view.AbsoluteLine())
	if c.view.cx > 0 {
		c.view.cx--
		c.buf.RemoveChar(c.view.cx, c.view.AbsoluteLine())
	}
	return Result{Dirty: []int{c.view.cy}}
}

func (c *Controller) save() error {
	if c.buf.Path() == "" {
		c.message = "no file name"
		return nil
	}
	if err := c.buf.Save(); err != nil {
		c.log.ErrorErr(log.CatBuffer, "Save failed", err, "path", c.buf.Path())
		saveErr := &SaveError{Err: err}
		c.message = saveErr.Error()
		return saveErr
	}
	c.log.Info(log.CatBuffer, "Saved", "path", c.buf.Path(), "lines", c.buf.LineCount())
	c.message = fmt.Sprintf("%q written, %d lines", c.buf.Name(), c.buf.LineCount())
	return nil
}

func (c *Controller) checkDisk() {
	changed, err := c.buf.ChangedOnDisk()
	if err != nil {
		c.log.ErrorErr(log.CatWatcher, "Checking file on disk", err, "path", c.buf.Path())
		return
	}
	if !changed {
		return
	}
	c.log.Info(log.CatWatcher, "File changed on disk", "path", c.buf.Path())
	c.message = fmt.Sprintf("%q changed on disk", c.buf.Name())
}
