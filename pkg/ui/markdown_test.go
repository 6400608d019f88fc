package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

func TestMarkdownRendererWithStyle_ThemeSelection(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	tests := []struct {
		style     string
		usesTheme bool
	}{
		{"", true},
		{ThemeStyle, true},
		{"dark", false},
		{"notty", false},
	}
	for _, tt := range tests {
		mr := NewMarkdownRendererWithStyle(60, tt.style, theme)
		if mr.UsesTheme() != tt.usesTheme {
			t.Errorf("style %q: UsesTheme = %v, want %v", tt.style, mr.UsesTheme(), tt.usesTheme)
		}
		if mr.renderer == nil {
			t.Errorf("style %q: no renderer built", tt.style)
		}
	}
}

func TestMarkdownRenderer_RenderFallsBackWithoutRenderer(t *testing.T) {
	mr := &MarkdownRenderer{width: 80}
	out, err := mr.Render("# Alpha")
	if err != nil || out != "# Alpha" {
		t.Errorf("Render = %q, %v; want the raw markdown", out, err)
	}
}

func TestMarkdownRenderer_SetWidthKeepsRendererForSameWidth(t *testing.T) {
	mr := NewMarkdownRendererWithStyle(40, "notty", Theme{})
	before := mr.renderer
	mr.SetWidth(40)
	mr.SetWidth(0)
	if mr.renderer != before || mr.width != 40 {
		t.Error("same or invalid width should not rebuild the renderer")
	}
	mr.SetWidth(60)
	if mr.width != 60 || mr.renderer == before {
		t.Error("a new width should rebuild the renderer")
	}
}

func TestBuildStyleFromTheme(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	dark := buildStyleFromTheme(theme, true)
	if dark.Document.Color == nil || *dark.Document.Color != "#f8f8f2" {
		t.Errorf("dark document colour = %v", dark.Document.Color)
	}
	if *dark.Link.Color != "#50fa7b" || *dark.H1.Color != "#bd93f9" {
		t.Errorf("dark link/h1 = %s/%s", *dark.Link.Color, *dark.H1.Color)
	}

	light := buildStyleFromTheme(theme, false)
	if *light.Document.Color != "#1e1e2e" || *light.Link.Color != "#2f7d32" {
		t.Errorf("light document/link = %s/%s", *light.Document.Color, *light.Link.Color)
	}
}

func TestDetail_ThemeStyleFollowsResize(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	d := NewDetailModel(theme, ThemeStyle, false)
	if !d.md.UsesTheme() {
		t.Fatal("theme style should use the theme renderer")
	}
	d.SetDetail(&present.Detail{NodeID: "a", Title: "Alpha", ContentHTML: "<p>some <em>body</em></p>"})

	d.SetSize(60, 20)
	if d.md.width != 58 || !d.md.UsesTheme() {
		t.Errorf("after resize: width %d, theme %v", d.md.width, d.md.UsesTheme())
	}
	before := d.md.renderer
	d.SetSize(60, 30)
	if d.md.renderer != before {
		t.Error("a height-only resize should keep the renderer")
	}
	if !strings.Contains(d.View(), "Alpha") || !strings.Contains(d.View(), "body") {
		t.Errorf("themed view missing content:\n%s", d.View())
	}
}

func TestDetail_NamedStyleIgnoresTheme(t *testing.T) {
	d := NewDetailModel(DefaultTheme(lipgloss.DefaultRenderer()), "notty", false)
	d.SetSize(50, 10)
	if d.md.UsesTheme() || d.md.width != 48 {
		t.Errorf("named style: theme %v width %d", d.md.UsesTheme(), d.md.width)
	}
}
