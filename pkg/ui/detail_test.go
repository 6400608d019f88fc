package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

func TestDetail_Markdown(t *testing.T) {
	d := NewDetailModel(DefaultTheme(lipgloss.DefaultRenderer()), "notty", false)
	if !strings.Contains(d.Markdown(), "No node selected") {
		t.Error("empty panel should say nothing is selected")
	}

	d.SetDetail(&present.Detail{
		NodeID:      "a",
		Title:       "Alpha",
		ContentHTML: "<p>hello <b>world</b></p>",
		Linked:      []present.LinkedNode{{ID: "b", Label: "supports"}, {ID: "c", Label: "Gamma"}},
	})
	md := d.Markdown()
	for _, want := range []string{"# Alpha", "hello **world**", "#### Linked nodes", "1. supports", "2. Gamma"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if !strings.Contains(d.View(), "supports") {
		t.Error("rendered view should include the linked labels")
	}
}

func TestDetail_LinkedID(t *testing.T) {
	d := NewDetailModel(DefaultTheme(lipgloss.DefaultRenderer()), "notty", false)
	if _, ok := d.LinkedID(1); ok {
		t.Error("no detail means no links")
	}
	d.SetDetail(&present.Detail{NodeID: "a", Title: "A", Linked: []present.LinkedNode{{ID: "b", Label: "x"}}})
	if id, ok := d.LinkedID(1); !ok || id != "b" {
		t.Errorf("LinkedID(1) = %q, %v", id, ok)
	}
	if _, ok := d.LinkedID(2); ok {
		t.Error("LinkedID past the end should fail")
	}
	if _, ok := d.LinkedID(0); ok {
		t.Error("LinkedID is 1-based")
	}
}

func TestDetail_SanitizeStripsScripts(t *testing.T) {
	det := &present.Detail{NodeID: "a", Title: "A", ContentHTML: `<p onclick="x()">safe</p><iframe src="evil"></iframe>`}

	raw := NewDetailModel(DefaultTheme(lipgloss.DefaultRenderer()), "notty", false)
	raw.SetDetail(det)
	clean := NewDetailModel(DefaultTheme(lipgloss.DefaultRenderer()), "notty", true)
	clean.SetDetail(det)

	if !strings.Contains(clean.Markdown(), "safe") {
		t.Error("sanitized content should keep text")
	}
	if clean.policy == nil || raw.policy != nil {
		t.Error("policy should only be set when sanitizing")
	}
}
