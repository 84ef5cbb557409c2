package buffer

// Columns inside the buffer are character (rune) offsets, never byte
// offsets. Display helpers measure terminal cells and never split a
// grapheme cluster when truncating.

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CharCount returns the number of characters in s.
func CharCount(s string) int {
	return len([]rune(s))
}

// InsertAtChar inserts ch at character offset col. An offset past the end
// pads s with spaces up to col before appending.
func InsertAtChar(s string, col int, ch rune) string {
	runes := []rune(s)
	if col < 0 {
		col = 0
	}
	if col >= len(runes) {
		var b strings.Builder
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", col-len(runes)))
		b.WriteRune(ch)
		return b.String()
	}

	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:col]...)
	out = append(out, ch)
	out = append(out, runes[col:]...)
	return string(out)
}

// DeleteCharAt removes the character at offset col.
// Returns s unchanged when col is out of range.
func DeleteCharAt(s string, col int) string {
	runes := []rune(s)
	if col < 0 || col >= len(runes) {
		return s
	}
	return string(append(runes[:col:col], runes[col+1:]...))
}

// SplitAtChar splits s at character offset col (clamped to [0, len]).
func SplitAtChar(s string, col int) (head, tail string) {
	runes := []rune(s)
	col = max(min(col, len(runes)), 0)
	return string(runes[:col]), string(runes[col:])
}

// DisplayWidth returns the width of s in terminal cells.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// PrefixWidth returns the display width of the first col characters of s
// as drawn by PadToWidth.
func PrefixWidth(s string, col int) int {
	head, _ := SplitAtChar(s, col)
	return runewidth.StringWidth(Visible(head))
}

// Visible replaces C0 control characters and DEL with their Unicode
// control pictures (\r becomes ␍), so a line never moves the terminal
// cursor while it is drawn. Each replacement is one cell wide and one
// character long, so columns are unaffected.
func Visible(s string) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0x7f:
			return '\u2421'
		case r < 0x20:
			return 0x2400 + r
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// TruncateToWidth cuts s to at most maxWidth cells without splitting a
// grapheme cluster.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	var b strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(s, state)
		if width+w > maxWidth {
			break
		}
		b.WriteString(cluster)
		width += w
		s = rest
		state = newState
	}
	return b.String()
}

// PadToWidth truncates or right-pads s with spaces to exactly width cells,
// so a rendered row overwrites whatever was on screen before. Control
// characters are drawn as their Visible glyphs.
func PadToWidth(s string, width int) string {
	s = TruncateToWidth(Visible(s), width)
	return runewidth.FillRight(s, width)
}
