package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vigil/internal/config"
)

type styles struct {
	mode            lipgloss.Style
	bar             lipgloss.Style
	cursorBlock     lipgloss.Style
	cursorUnderline lipgloss.Style
}

// newStyles builds the status line styles. Empty theme colors fall back to
// the terminal's own colors.
func newStyles(theme config.ThemeConfig) styles {
	mode := lipgloss.NewStyle().Bold(true)
	if theme.ModeFg != "" {
		mode = mode.Foreground(lipgloss.Color(theme.ModeFg))
	}
	if theme.ModeBg != "" {
		mode = mode.Background(lipgloss.Color(theme.ModeBg))
	}

	bar := lipgloss.NewStyle()
	if theme.BarFg != "" {
		bar = bar.Foreground(lipgloss.Color(theme.BarFg))
	}
	if theme.BarBg != "" {
		bar = bar.Background(lipgloss.Color(theme.BarBg))
	}

	return styles{
		mode:            mode,
		bar:             bar,
		cursorBlock:     lipgloss.NewStyle().Reverse(true),
		cursorUnderline: lipgloss.NewStyle().Underline(true),
	}
}
