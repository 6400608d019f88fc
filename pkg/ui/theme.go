package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors and base styles shared by every panel.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor
	Link      lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
}

// DefaultTheme returns the Dracula-flavoured palette.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#A0A0B0"},
		Muted:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#6272A4"},
		Border:    lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#D96C00", Dark: "#FFB86C"},
		Accent:    lipgloss.AdaptiveColor{Light: "#C02080", Dark: "#FF79C6"},
		Link:      lipgloss.AdaptiveColor{Light: "#2F7D32", Dark: "#50FA7B"},
		Error:     lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5555"},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#F8F8F2"})
	t.Selected = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#E8E0FF", Dark: "#44475A"}).
		Bold(true)
	return t
}

func canvasStyles(t Theme) map[cellStyle]lipgloss.Style {
	r := t.Renderer
	return map[cellStyle]lipgloss.Style{
		styleBubble:       r.NewStyle().Foreground(t.Muted),
		styleBubbleTitle:  r.NewStyle().Foreground(t.Secondary).Italic(true),
		styleLine:         r.NewStyle().Foreground(t.Border),
		styleLineActive:   r.NewStyle().Foreground(t.Highlight),
		styleLabel:        r.NewStyle().Foreground(t.Subtext),
		styleCard:         r.NewStyle().Foreground(t.Primary),
		styleCardActive:   r.NewStyle().Foreground(t.Highlight).Bold(true),
		styleCardSource:   r.NewStyle().Foreground(t.Accent).Bold(true),
		styleCardTitle:    t.Base.Bold(true),
		styleBadge:        r.NewStyle().Foreground(t.Link),
		styleMenu:         r.NewStyle().Foreground(t.Base.GetForeground()).Background(t.Border),
		styleMenuSelected: r.NewStyle().Foreground(t.Accent).Background(t.Border).Bold(true),
	}
}
