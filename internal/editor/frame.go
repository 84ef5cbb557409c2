package editor

import (
	"fmt"

	"github.com/zjrosen/vigil/internal/buffer"
)

// CursorShape is how the terminal cursor should be drawn.
type CursorShape int

const (
	CursorBlock     CursorShape = iota // Normal mode
	CursorBar                          // Insert mode
	CursorUnderline                    // a command is pending
)

// Status is the content of the status line. Col and Line are 1-based.
type Status struct {
	Mode     string
	File     string
	Modified bool
	Changes  buffer.ChangeStats
	Col      int
	Line     int
	Message  string
}

// Position renders the cursor position as "col:line".
func (s Status) Position() string {
	return fmt.Sprintf("%d:%d", s.Col, s.Line)
}

// Layout splits the status line into its mode, file, and right-hand
// segments. The file segment is truncated or padded so the three together
// fill width cells whenever width allows.
func (s Status) Layout(width int, showChanges bool) (mode, file, right string) {
	mode = " " + s.Mode + " "

	right = s.Position() + " "
	if showChanges && !s.Changes.IsZero() {
		right = fmt.Sprintf("+%d -%d  ", s.Changes.Added, s.Changes.Removed) + right
	}

	file = " " + s.File
	if s.Modified {
		file += " [+]"
	}

	avail := max(width-buffer.DisplayWidth(mode)-buffer.DisplayWidth(right), 0)
	if buffer.DisplayWidth(file) > avail && avail > 0 {
		file = buffer.TruncateToWidth(file, avail-1) + "…"
	}
	return mode, buffer.PadToWidth(file, avail), right
}

// Frame is everything a renderer needs to paint one screen: the content
// rows (already padded to the screen width), the status line, and where to
// put the terminal cursor. Renderers never compute text, only style it.
type Frame struct {
	Width   int
	Height  int
	Rows    []string
	Status  Status
	CursorX int
	CursorY int
	Cursor  CursorShape
}

// Frame builds the read model for the current state.
func (c *Controller) Frame() Frame {
	width, height := c.view.Size()
	rows := make([]string, c.view.ContentHeight())
	for y := range rows {
		rows[y] = c.Row(y)
	}

	cx, cy := c.view.Cursor()
	line, _ := c.buf.Line(c.view.AbsoluteLine())

	shape := CursorBlock
	switch {
	case c.input.Pending() != noPending:
		shape = CursorUnderline
	case c.input.Mode() == ModeInsert:
		shape = CursorBar
	}

	return Frame{
		Width:  width,
		Height: height,
		Rows:   rows,
		Status: Status{
			Mode:     c.input.Mode().String(),
			File:     c.buf.Name(),
			Modified: c.buf.Modified(),
			Changes:  c.buf.Changes(),
			Col:      cx + 1,
			Line:     c.view.AbsoluteLine() + 1,
			Message:  c.message,
		},
		CursorX: min(buffer.PrefixWidth(line, cx), max(width-1, 0)),
		CursorY: cy,
		Cursor:  shape,
	}
}

// Row returns content row y padded to the screen width. Rows past the end
// of the buffer are blank so stale text gets overwritten.
func (c *Controller) Row(y int) string {
	width, _ := c.view.Size()
	line, _ := c.buf.Line(c.view.Top() + y)
	return buffer.PadToWidth(line, width)
}
