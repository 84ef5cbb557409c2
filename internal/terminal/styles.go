package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zjrosen/vigil/internal/config"
)

type styles struct {
	mode tcell.Style
	bar  tcell.Style
}

// newStyles maps the theme's hex colors to tcell styles. Empty colors keep
// the terminal default.
func newStyles(theme config.ThemeConfig) styles {
	return styles{
		mode: colored(tcell.StyleDefault.Bold(true), theme.ModeFg, theme.ModeBg),
		bar:  colored(tcell.StyleDefault, theme.BarFg, theme.BarBg),
	}
}

func colored(style tcell.Style, fg, bg string) tcell.Style {
	if fg != "" {
		style = style.Foreground(tcell.GetColor(fg))
	}
	if bg != "" {
		style = style.Background(tcell.GetColor(bg))
	}
	return style
}
