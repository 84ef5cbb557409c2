package buffer

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeStats counts lines added and removed since the last load or save.
type ChangeStats struct {
	Added   int
	Removed int
}

// IsZero reports whether nothing changed.
func (c ChangeStats) IsZero() bool {
	return c.Added == 0 && c.Removed == 0
}

// Changes diffs the current lines against the saved snapshot line by line.
// A modified line counts as one removal plus one addition.
func (b *Buffer) Changes() ChangeStats {
	if !b.Modified() {
		return ChangeStats{}
	}
	return diffLines(b.saved, b.lines)
}

func diffLines(before, after []string) ChangeStats {
	dmp := diffmatchpatch.New()
	// Every line gets a trailing newline so the last line diffs like the rest.
	a, c, lineArray := dmp.DiffLinesToChars(joinTerminated(before), joinTerminated(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, c, false), lineArray)

	var stats ChangeStats
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stats.Added += n
		case diffmatchpatch.DiffDelete:
			stats.Removed += n
		}
	}
	return stats
}

func joinTerminated(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
