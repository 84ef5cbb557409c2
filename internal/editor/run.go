package editor

import (
	"errors"

	"github.com/zjrosen/vigil/internal/log"
)

// ErrSourceClosed is returned by an EventSource that has no more events.
// Run treats it as a normal end of input.
var ErrSourceClosed = errors.New("event source closed")

// EventSource delivers input events. PollEvent blocks until one is ready.
type EventSource interface {
	PollEvent() (Event, error)
}

// Renderer paints frames onto a terminal.
type Renderer interface {
	// Render draws the whole frame and shows it.
	Render(f Frame) error
	// RenderRow redraws one content row without touching the rest.
	RenderRow(y int, row string) error
}

// Run is the blocking event loop: clamp the cursor, draw, wait for an event,
// handle it. Rows reported dirty by an edit are patched before the next
// full frame. Run returns nil on quit or when the source closes. Save
// failures are shown on the message line and the loop keeps going.
func (c *Controller) Run(src EventSource, r Renderer) error {
	c.log.Info(log.CatEditor, "Editor loop started", "file", c.buf.Name(), "lines", c.buf.LineCount())

	for {
		c.Clamp()
		if err := r.Render(c.Frame()); err != nil {
			return err
		}

		ev, err := src.PollEvent()
		if errors.Is(err, ErrSourceClosed) {
			c.log.Info(log.CatEditor, "Event source closed")
			return nil
		}
		if err != nil {
			return err
		}

		res, err := c.Handle(ev)
		var saveErr *SaveError
		if err != nil && !errors.As(err, &saveErr) {
			return err
		}
		if res.Quit {
			c.log.Info(log.CatEditor, "Quit", "modified", c.buf.Modified())
			return nil
		}

		for _, y := range res.Dirty {
			if err := r.RenderRow(y, c.Row(y)); err != nil {
				return err
			}
		}
	}
}
