package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer wraps a glamour renderer that is rebuilt when the width
// changes.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
	useTheme bool
	theme    *Theme
}

// ThemeStyle is the glamour style name that derives colours from the UI
// theme instead of a built-in glamour style.
const ThemeStyle = "theme"

// NewMarkdownRendererWithStyle uses a named glamour style ("dark", "light",
// "notty", "auto"). ThemeStyle and an empty name follow the UI theme.
func NewMarkdownRendererWithStyle(width int, style string, theme Theme) *MarkdownRenderer {
	if style == "" || style == ThemeStyle {
		return NewMarkdownRendererWithTheme(width, theme)
	}
	mr := &MarkdownRenderer{width: width, style: style}
	mr.rebuild()
	return mr
}

// NewMarkdownRendererWithTheme derives the style from the UI theme.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width, useTheme: true, theme: &theme}
	mr.rebuild()
	return mr
}

func (mr *MarkdownRenderer) rebuild() {
	var opt glamour.TermRendererOption
	switch {
	case mr.useTheme && mr.theme != nil:
		opt = glamour.WithStyles(buildStyleFromTheme(*mr.theme, mr.IsDarkMode()))
	case mr.style == "auto" || mr.style == "":
		opt = glamour.WithAutoStyle()
	default:
		opt = glamour.WithStandardStyle(mr.style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(mr.width))
	if err != nil {
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render renders markdown, returning it unchanged when no renderer is
// available.
func (mr *MarkdownRenderer) Render(md string) (string, error) {
	if mr.renderer == nil {
		return md, nil
	}
	return mr.renderer.Render(md)
}

// SetWidth rebuilds the renderer for a new wrap width.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == mr.width {
		return
	}
	mr.width = width
	mr.rebuild()
}

// SetWidthWithTheme switches to the theme style and a new width. It always
// rebuilds.
func (mr *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	if width > 0 {
		mr.width = width
	}
	mr.useTheme = true
	mr.theme = &theme
	mr.rebuild()
}

// UsesTheme reports whether the renderer follows the UI theme.
func (mr *MarkdownRenderer) UsesTheme() bool { return mr.useTheme }

// IsDarkMode reports whether the terminal background is dark.
func (mr *MarkdownRenderer) IsDarkMode() bool {
	if mr.theme != nil && mr.theme.Renderer != nil {
		return mr.theme.Renderer.HasDarkBackground()
	}
	return lipgloss.HasDarkBackground()
}

func extractHex(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return strings.ToLower(c.Dark)
	}
	return strings.ToLower(c.Light)
}

func buildStyleFromTheme(t Theme, dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}
	str := func(c lipgloss.AdaptiveColor) *string {
		s := extractHex(c, dark)
		return &s
	}
	base := lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#F8F8F2"}
	if fg, ok := t.Base.GetForeground().(lipgloss.AdaptiveColor); ok {
		base = fg
	}

	cfg.Document.Color = str(base)
	cfg.Heading.Color = str(t.Primary)
	cfg.H1.Color = str(t.Primary)
	cfg.Link.Color = str(t.Link)
	cfg.LinkText.Color = str(t.Secondary)
	cfg.Code.Color = str(t.Accent)
	cfg.BlockQuote.Color = str(t.Subtext)
	cfg.Emph.Color = str(t.Highlight)
	return cfg
}
