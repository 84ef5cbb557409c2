package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vigil/internal/buffer"
)

func TestStatusLayout(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		width       int
		showChanges bool
		wantFile    string
		wantRight   string
	}{
		{
			name:      "fills width",
			status:    Status{Mode: "NORMAL", File: "a.txt", Col: 1, Line: 1},
			width:     20,
			wantFile:  " a.txt  ",
			wantRight: "1:1 ",
		},
		{
			name:      "modified marker",
			status:    Status{Mode: "NORMAL", File: "a.txt", Modified: true, Col: 3, Line: 7},
			width:     24,
			wantFile:  " a.txt [+]  ",
			wantRight: "3:7 ",
		},
		{
			name:        "changes shown",
			status:      Status{Mode: "INSERT", File: "a", Modified: true, Changes: buffer.ChangeStats{Added: 2, Removed: 1}, Col: 1, Line: 1},
			width:       30,
			showChanges: true,
			wantFile:    " a [+]     ",
			wantRight:   "+2 -1  1:1 ",
		},
		{
			name:      "changes hidden",
			status:    Status{Mode: "INSERT", File: "a", Changes: buffer.ChangeStats{Added: 2}, Col: 1, Line: 1},
			width:     16,
			wantFile:  " a  ",
			wantRight: "1:1 ",
		},
		{
			name:      "long name truncated",
			status:    Status{Mode: "NORMAL", File: "a-very-long-name.txt", Col: 1, Line: 1},
			width:     20,
			wantFile:  " a-very…",
			wantRight: "1:1 ",
		},
		{
			name:      "no room for name",
			status:    Status{Mode: "NORMAL", File: "a.txt", Col: 1, Line: 1},
			width:     5,
			wantFile:  "",
			wantRight: "1:1 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, file, right := tt.status.Layout(tt.width, tt.showChanges)
			require.Equal(t, " "+tt.status.Mode+" ", mode)
			require.Equal(t, tt.wantFile, file)
			require.Equal(t, tt.wantRight, right)
		})
	}
}

func TestRow_PastEndIsBlank(t *testing.T) {
	c := New(buffer.New("", []string{"x"}), 4, 10)

	require.Equal(t, "x   ", c.Row(0))
	require.Equal(t, "    ", c.Row(5))
}

func TestRow_CarriageReturnIsDrawnVisibly(t *testing.T) {
	c := New(buffer.New("", []string{"ab\r"}), 10, 5)

	require.Equal(t, "ab␍       ", c.Row(0))

	line, _ := c.Buffer().Line(0)
	require.Equal(t, "ab\r", line, "buffer text is untouched")
}
