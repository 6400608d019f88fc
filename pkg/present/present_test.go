package present

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/graph"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/view"
)

func fixture() *app.State {
	g := graph.New(model.Snapshot{
		Bubbles: []model.Bubble{
			{ID: "core", Title: "Core", Description: "inner", X: 0, Y: 0, Radius: 100},
			{ID: "empty", Title: "Empty", Radius: 50},
		},
		Nodes: []model.Node{
			{ID: "a", Title: "Alpha", ContentHTML: "<p>alpha</p>", Bubbles: []string{"core"}, X: 0, Y: 0},
			{ID: "b", Title: "Beta", Bubbles: []string{"core", "empty", "ghost"}, X: 300, Y: 100},
			{ID: "c", Title: "Gamma <x>", X: -400, Y: 40},
		},
		Links: []model.Link{
			{From: "a", To: "b", Label: "supports"},
			{From: "a", To: "missing", Label: "dangling"},
			{From: "a", To: "c", Label: ""},
			{From: "ghost", To: "a", Label: "dangling too"},
		},
	})
	v := view.New(1)
	v.SetViewport(1000, 800)
	return app.NewState(g, v)
}

func TestBadge(t *testing.T) {
	tests := []struct {
		bubbles []string
		want    string
	}{
		{nil, ""},
		{[]string{"x"}, "Bubble: 1"},
		{[]string{"x", "y", "z"}, "Bubbles: 3"},
	}
	for _, tt := range tests {
		if got := Badge(&model.Node{Bubbles: tt.bubbles}); got != tt.want {
			t.Errorf("Badge(%v) = %q, want %q", tt.bubbles, got, tt.want)
		}
	}
}

func TestProject_LinesSkipDangling(t *testing.T) {
	st := fixture()
	f := Project(st)

	if len(f.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2: %+v", len(f.Lines), f.Lines)
	}
	l := f.Lines[0]
	if l.From != "a" || l.To != "b" {
		t.Errorf("first line = %s->%s", l.From, l.To)
	}
	if l.WorldA != (model.Point{X: 100, Y: 30}) || l.WorldB != (model.Point{X: 400, Y: 130}) {
		t.Errorf("anchors = %+v %+v", l.WorldA, l.WorldB)
	}
	if l.ScreenA != (model.Point{X: 600, Y: 430}) {
		t.Errorf("ScreenA = %+v", l.ScreenA)
	}
}

func TestProject_Highlight(t *testing.T) {
	st := fixture()
	if f := Project(st); f.HighlightID != "" || f.Detail != nil {
		t.Error("expected no highlight without selection")
	}

	st.SelectedID = "b"
	f := Project(st)
	highlighted := 0
	for _, n := range f.Nodes {
		if n.Highlighted {
			highlighted++
			if n.ID != "b" {
				t.Errorf("wrong node highlighted: %s", n.ID)
			}
		}
	}
	if highlighted != 1 {
		t.Errorf("highlighted = %d, want 1", highlighted)
	}
	for _, r := range f.AllNodes {
		if r.Active != (r.ID == "b") {
			t.Errorf("AllNodes[%s].Active = %v", r.ID, r.Active)
		}
	}

	st.SelectedID = "stale"
	if f := Project(st); f.HighlightID != "" {
		t.Errorf("stale selection highlighted %q", f.HighlightID)
	}
}

func TestProject_Folders(t *testing.T) {
	f := Project(fixture())

	if len(f.Folders) != 2 {
		t.Fatalf("len(Folders) = %d", len(f.Folders))
	}
	core := f.Folders[0]
	if core.Meta != "2 nodes" || len(core.Nodes) != 2 {
		t.Errorf("core folder = %+v", core)
	}
	empty := f.Folders[1]
	if empty.Meta != "1 nodes" || empty.Nodes[0].ID != "b" {
		t.Errorf("empty folder = %+v", empty)
	}
	if len(f.Unassigned) != 1 || f.Unassigned[0].ID != "c" {
		t.Errorf("Unassigned = %+v", f.Unassigned)
	}
	if len(f.AllNodes) != 3 {
		t.Errorf("len(AllNodes) = %d", len(f.AllNodes))
	}
}

func TestProject_Bubbles(t *testing.T) {
	st := fixture()
	st.View.Reset(2)
	f := Project(st)
	b := f.Bubbles[0]
	if b.Diameter != 200 || b.ScreenRadius != 200 {
		t.Errorf("bubble view = %+v", b)
	}
	if b.Screen != (model.Point{X: 500, Y: 400}) {
		t.Errorf("bubble screen centre = %+v", b.Screen)
	}
}

func TestDetail(t *testing.T) {
	st := fixture()
	d, ok := DetailFor(st, "a")
	if !ok {
		t.Fatal("expected detail for a")
	}
	if len(d.Linked) != 2 {
		t.Fatalf("Linked = %+v", d.Linked)
	}
	if d.Linked[0].Label != "supports" {
		t.Errorf("first label = %q", d.Linked[0].Label)
	}
	if d.Linked[1].Label != "Gamma <x>" {
		t.Errorf("blank label should fall back to target title, got %q", d.Linked[1].Label)
	}
	if d.References("missing") {
		t.Error("dangling target listed")
	}

	doc := d.HTML()
	if !strings.HasPrefix(doc, "<p>alpha</p><section><h4>Linked nodes</h4><ul>") {
		t.Errorf("HTML() = %s", doc)
	}
	if !strings.Contains(doc, `<a href="#" data-node-id="b">supports</a>`) {
		t.Errorf("HTML() missing link to b: %s", doc)
	}
	if !strings.Contains(doc, "Gamma &lt;x&gt;") {
		t.Errorf("label not escaped: %s", doc)
	}

	plain, _ := DetailFor(st, "c")
	if plain.HTML() != "" {
		t.Errorf("node without content or links rendered %q", plain.HTML())
	}
	if _, ok := DetailFor(st, "nope"); ok {
		t.Error("expected no detail for missing node")
	}
}

func TestTextMap(t *testing.T) {
	m := BuildTextMap(fixture())

	wantBubbles := []string{"Core: Alpha; Beta.", "Empty: Beta."}
	for i, want := range wantBubbles {
		if m.Bubbles[i] != want {
			t.Errorf("Bubbles[%d] = %q, want %q", i, m.Bubbles[i], want)
		}
	}
	wantLinks := []string{"Alpha → Beta (supports).", "Alpha → Gamma <x> ()."}
	if len(m.Links) != len(wantLinks) {
		t.Fatalf("Links = %v", m.Links)
	}
	for i, want := range wantLinks {
		if m.Links[i] != want {
			t.Errorf("Links[%d] = %q, want %q", i, m.Links[i], want)
		}
	}

	out := m.String()
	if !strings.HasPrefix(out, HeadingBubbles+"\n") || !strings.Contains(out, "\n"+HeadingLinks+"\n") {
		t.Errorf("String() = %q", out)
	}
}

func TestTextMap_EmptyBubble(t *testing.T) {
	g := graph.New(model.Snapshot{Bubbles: []model.Bubble{{ID: "x", Title: "Lonely"}}})
	m := BuildTextMap(app.NewState(g, view.New(1)))
	if len(m.Bubbles) != 1 || m.Bubbles[0] != "Lonely: no nodes yet." {
		t.Errorf("Bubbles = %v", m.Bubbles)
	}
}

func TestContentDump(t *testing.T) {
	dump := ContentDump(fixture())
	if !strings.Contains(dump, `<div class="hidden-node"><h3>Alpha</h3><p>Bubbles: core</p><div><p>alpha</p></div></div>`) {
		t.Errorf("dump missing alpha block: %s", dump)
	}
	if !strings.Contains(dump, "<h3>Gamma &lt;x&gt;</h3><p>Bubbles: none</p>") {
		t.Errorf("dump missing gamma block: %s", dump)
	}
}

func TestNodeAt(t *testing.T) {
	st := fixture()
	st.Graph.AddNode(model.Node{ID: "top", Title: "Top", X: 50, Y: 10})

	tests := []struct {
		name   string
		screen model.Point
		want   string
	}{
		{"InsideA", model.Point{X: 510, Y: 420}, "a"},
		{"OverlapTopmostWins", model.Point{X: 600, Y: 430}, "top"},
		{"Empty", model.Point{X: 10, Y: 10}, ""},
		{"InsideB", model.Point{X: 850, Y: 520}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeAt(st, tt.screen); got != tt.want {
				t.Errorf("NodeAt(%+v) = %q, want %q", tt.screen, got, tt.want)
			}
		})
	}
}

func TestPresenter(t *testing.T) {
	var got []Frame
	p := NewPresenter(surfaceFunc(func(f Frame) { got = append(got, f) }))
	st := fixture()
	st.LinkMode = &app.LinkMode{FromID: "a", Type: app.LinkSupporting}

	p.Sync(st)

	if len(got) != 1 || p.Syncs() != 1 {
		t.Fatalf("renders = %d", len(got))
	}
	if !strings.Contains(p.Last().Banner, "Alpha") || p.Last().LinkFrom != "a" {
		t.Errorf("banner = %q", p.Last().Banner)
	}
}

type surfaceFunc func(Frame)

func (f surfaceFunc) Render(fr Frame) { f(fr) }

// Dangling references anywhere in the graph must never break projection.
func TestProject_DanglingTolerance(t *testing.T) {
	g := graph.New(model.Snapshot{
		Links: []model.Link{{From: "x", To: "y"}, {From: "", To: ""}},
	})
	st := app.NewState(g, view.New(1))
	st.SelectedID = "x"
	st.LinkMode = &app.LinkMode{FromID: "gone"}

	f := Project(st)
	if len(f.Lines) != 0 || f.Detail != nil {
		t.Errorf("frame = %+v", f)
	}
	if !strings.Contains(f.Banner, "gone") {
		t.Errorf("banner = %q", f.Banner)
	}
}
