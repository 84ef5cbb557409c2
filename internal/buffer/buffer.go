// Package buffer holds the in-memory, line-oriented text of the file being
// edited. It knows nothing about screens or cursors: every operation takes
// buffer coordinates (character column, zero-based line).
package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// NoName is shown in place of a file name for buffers without a path.
const NoName = "No Name"

// Buffer is an ordered list of lines plus an optional file path.
// A buffer with zero lines is valid and differs from one holding a single
// empty line.
type Buffer struct {
	path  string
	lines []string

	// saved is the content as last loaded from or written to path.
	saved []string
}

// New creates a buffer from lines. path may be empty.
func New(path string, lines []string) *Buffer {
	owned := append([]string(nil), lines...)
	return &Buffer{
		path:  path,
		lines: owned,
		saved: append([]string(nil), owned...),
	}
}

// Load reads path into a new buffer. An empty path yields an empty buffer;
// nothing is created on disk until Save.
func Load(path string) (*Buffer, error) {
	if path == "" {
		return New("", nil), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the file the user asked to edit
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return New(path, splitLines(data)), nil
}

// splitLines splits file content on "\n". Splitting is the exact inverse of
// Save's join, so a trailing newline shows up as a final empty line and the
// file round-trips byte for byte. Empty content yields zero lines.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// Path returns the associated file path, or "" if there is none.
func (b *Buffer) Path() string {
	return b.path
}

// Name returns the base name of the file, or NoName.
func (b *Buffer) Name() string {
	if b.path == "" {
		return NoName
	}
	return filepath.Base(b.path)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the content of line index. ok is false when index is out of
// range, which callers treat as "nothing here" rather than a fault.
func (b *Buffer) Line(index int) (line string, ok bool) {
	if index < 0 || index >= len(b.lines) {
		return "", false
	}
	return b.lines[index], true
}

// LineLen returns the character length of line index, 0 when absent.
func (b *Buffer) LineLen(index int) int {
	line, _ := b.Line(index)
	return CharCount(line)
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// InsertChar inserts ch at column on line. Typing past the end of the
// document appends a new line; typing past the end of a line pads it with
// spaces up to column first.
func (b *Buffer) InsertChar(column, line int, ch rune) {
	if line < 0 {
		return
	}
	if line >= len(b.lines) {
		b.lines = append(b.lines, InsertAtChar("", column, ch))
		return
	}
	b.lines[line] = InsertAtChar(b.lines[line], column, ch)
}

// RemoveChar removes the character at column on line. Absent lines, empty
// lines and out-of-range columns are left alone.
func (b *Buffer) RemoveChar(column, line int) {
	if line < 0 || line >= len(b.lines) || b.lines[line] == "" {
		return
	}
	b.lines[line] = DeleteCharAt(b.lines[line], column)
}

// RemoveLine deletes line, shifting the following lines up by one.
func (b *Buffer) RemoveLine(line int) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:line], b.lines[line+1:]...)
}

// SplitLine breaks line at column; the text from column onward becomes a
// new line directly below. An absent line is materialized as empty first.
func (b *Buffer) SplitLine(column, line int) {
	if line < 0 {
		return
	}
	for len(b.lines) <= line {
		b.lines = append(b.lines, "")
	}
	head, tail := SplitAtChar(b.lines[line], column)
	b.lines[line] = head
	b.lines = append(b.lines[:line+1], append([]string{tail}, b.lines[line+1:]...)...)
}

// Save overwrites the associated file with all lines joined by "\n".
// Without a path there is nowhere to write and Save does nothing.
// On failure the in-memory lines are unchanged.
func (b *Buffer) Save() error {
	if b.path == "" {
		return nil
	}
	content := strings.Join(b.lines, "\n")
	if err := os.WriteFile(b.path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: user document, not a secret
		return fmt.Errorf("writing %s: %w", b.path, err)
	}
	b.saved = append(b.saved[:0], b.lines...)
	return nil
}

// Modified reports whether the lines differ from the last load or save.
func (b *Buffer) Modified() bool {
	if len(b.lines) != len(b.saved) {
		return true
	}
	for i := range b.lines {
		if b.lines[i] != b.saved[i] {
			return true
		}
	}
	return false
}

// ChangedOnDisk reports whether the file at the buffer's path no longer
// holds what was last loaded or saved. Used to tell the editor's own writes
// apart from someone else's.
func (b *Buffer) ChangedOnDisk() (bool, error) {
	if b.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return len(b.saved) > 0, nil
		}
		return false, fmt.Errorf("reading %s: %w", b.path, err)
	}
	return string(data) != strings.Join(b.saved, "\n"), nil
}
