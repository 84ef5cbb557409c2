package editor

// StatusRows is the number of screen rows at the bottom reserved for the
// status line and the message line.
const StatusRows = 2

// LineSource is the read-only view of a buffer the viewport needs.
type LineSource interface {
	LineCount() int
	LineLen(index int) int
}

// Viewport tracks the cursor and the visible window over the buffer.
// cx and cy are screen-relative: cy is the row within the viewport, and the
// buffer line under the cursor is vtop+cy. No field is ever negative.
type Viewport struct {
	width  int
	height int
	vtop   int // first buffer line shown
	vleft  int // first visible column; horizontal scrolling is not implemented
	cx     int
	cy     int
}

// NewViewport returns a viewport of the given screen size with the cursor
// at the top-left and no scroll.
func NewViewport(width, height int) Viewport {
	v := Viewport{}
	v.SetSize(width, height)
	return v
}

// SetSize updates the screen size. If the cursor row falls below the new
// content area, the view scrolls so the cursor stays on the same line.
func (v *Viewport) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)

	if ch := v.ContentHeight(); ch > 0 && v.cy >= ch {
		v.vtop += v.cy - (ch - 1)
		v.cy = ch - 1
	}
}

// Size returns the screen size in cells.
func (v Viewport) Size() (width, height int) {
	return v.width, v.height
}

// ContentHeight is the number of rows available for buffer lines.
func (v Viewport) ContentHeight() int {
	return max(v.height-StatusRows, 0)
}

// AbsoluteLine is the buffer line the cursor sits on.
func (v Viewport) AbsoluteLine() int {
	return v.vtop + v.cy
}

// Cursor returns the screen-relative cursor position.
func (v Viewport) Cursor() (cx, cy int) {
	return v.cx, v.cy
}

// Top returns the first visible buffer line.
func (v Viewport) Top() int {
	return v.vtop
}

// Left returns the first visible column.
func (v Viewport) Left() int {
	return v.vleft
}

// SetCursor places the cursor at screen position (cx, cy), saturating at 0.
func (v *Viewport) SetCursor(cx, cy int) {
	v.cx = max(cx, 0)
	v.cy = max(cy, 0)
}

// SetTop scrolls so that line is the first visible one.
func (v *Viewport) SetTop(line int) {
	v.vtop = max(line, 0)
}

// ClampToBuffer pulls the cursor back inside the buffer: the row so that
// vtop+cy is at most the last line, then the column to at most the length
// of that line (one past the last character is allowed). The column is not
// limited by the screen width; Frame pins the drawn cursor to the last
// screen column instead. Clamping moves cy, not vtop; vtop only moves when
// it alone is already past the last line, which happens after deleting lines.
func (v *Viewport) ClampToBuffer(src LineSource) {
	last := max(src.LineCount()-1, 0)

	if v.vtop+v.cy > last {
		v.cy = max(last-v.vtop, 0)
	}
	if v.vtop > last {
		v.vtop = last
	}

	if n := src.LineLen(v.AbsoluteLine()); v.cx > n {
		v.cx = n
	}
}

// MoveUp moves the cursor up one row, scrolling when it is on the top row.
func (v *Viewport) MoveUp() {
	if v.cy == 0 {
		if v.vtop > 0 {
			v.vtop--
		}
		return
	}
	v.cy--
}

// MoveDown moves the cursor down one row, scrolling once the cursor would
// leave the content area. Moving past the last line is undone by the next
// ClampToBuffer.
func (v *Viewport) MoveDown() {
	v.cy++
	if v.cy >= v.ContentHeight() {
		v.vtop++
		v.cy--
	}
}

// MoveLeft moves the cursor one column left, never past the left offset.
func (v *Viewport) MoveLeft() {
	v.cx = max(v.cx-1, 0)
	if v.cx < v.vleft {
		v.cx = v.vleft
	}
}

// MoveRight moves the cursor one column right; ClampToBuffer bounds it.
func (v *Viewport) MoveRight() {
	v.cx++
}

// ToLineStart moves the cursor to column 0.
func (v *Viewport) ToLineStart() {
	v.cx = 0
}

// ToLineEnd moves the cursor onto the last character of its line.
func (v *Viewport) ToLineEnd(src LineSource) {
	v.cx = max(src.LineLen(v.AbsoluteLine())-1, 0)
}

// PageUp scrolls up one content height, stopping at the top.
func (v *Viewport) PageUp() {
	v.vtop = max(v.vtop-v.ContentHeight(), 0)
}

// PageDown scrolls down one content height if there are lines beyond the
// current page.
func (v *Viewport) PageDown(src LineSource) {
	if src.LineCount() > v.vtop+v.ContentHeight() {
		v.vtop += v.ContentHeight()
	}
}
