// Package present projects application state into a Frame: everything a draw
// surface needs to show, computed from scratch on every sync.
package present

import (
	"fmt"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// Node cards are a fixed size in world units; links join card anchors.
const (
	CardWidth  = 200.0
	CardHeight = 60.0
	AnchorX    = CardWidth / 2
	AnchorY    = CardHeight / 2
)

// BubbleView is a bubble placed on screen.
type BubbleView struct {
	ID           string
	Title        string
	Description  string
	World        model.Point
	Screen       model.Point
	Radius       float64
	Diameter     float64
	ScreenRadius float64
}

// NodeView is a node card. World and Screen are the top-left corner.
type NodeView struct {
	ID          string
	Title       string
	Summary     string
	Badge       string
	World       model.Point
	Screen      model.Point
	Highlighted bool
}

// Line joins the anchors of two resolvable nodes.
type Line struct {
	From, To            string
	Label               string
	WorldA, WorldB      model.Point
	ScreenA, ScreenB    model.Point
	TouchesSelectedNode bool
}

// NodeRef is an entry in a sidebar list.
type NodeRef struct {
	ID     string
	Title  string
	Active bool
}

// Folder groups the nodes that list a bubble.
type Folder struct {
	BubbleID string
	Title    string
	Meta     string
	Nodes    []NodeRef
}

// Frame is the full presentation of one state.
type Frame struct {
	Scale  float64
	Offset model.Point

	Bubbles []BubbleView
	Nodes   []NodeView
	Lines   []Line

	HighlightID string
	Folders     []Folder
	// Unassigned holds nodes without bubbles. Surfaces track it but do not
	// render it as a section.
	Unassigned []NodeRef
	AllNodes   []NodeRef

	Detail      *Detail
	ContentDump string
	TextMap     TextMap

	Creating bool
	LinkFrom string
	Banner   string
}

// Badge returns the membership badge shown on a card, or "".
func Badge(n *model.Node) string {
	switch len(n.Bubbles) {
	case 0:
		return ""
	case 1:
		return "Bubble: 1"
	default:
		return fmt.Sprintf("Bubbles: %d", len(n.Bubbles))
	}
}

// Anchor returns the world point links attach to.
func Anchor(n *model.Node) model.Point {
	return model.Point{X: n.X + AnchorX, Y: n.Y + AnchorY}
}

// Project computes the frame for st. It never fails: dangling links and stale
// ids are skipped.
func Project(st *app.State) Frame {
	tr := st.View
	g := st.Graph
	selected := st.Selected()

	f := Frame{
		Scale:    tr.Scale,
		Offset:   model.Point{X: tr.Offset.X, Y: tr.Offset.Y},
		Creating: st.Editor.IsNew,
	}
	if selected != nil {
		f.HighlightID = selected.ID
	}

	for _, b := range g.Bubbles() {
		center := model.Point{X: b.X, Y: b.Y}
		f.Bubbles = append(f.Bubbles, BubbleView{
			ID:           b.ID,
			Title:        b.Title,
			Description:  b.Description,
			World:        center,
			Screen:       tr.WorldToScreen(center),
			Radius:       b.Radius,
			Diameter:     b.Diameter(),
			ScreenRadius: b.Radius * tr.Scale,
		})
	}

	nodes := g.Nodes()
	for _, n := range nodes {
		f.Nodes = append(f.Nodes, NodeView{
			ID:          n.ID,
			Title:       n.Title,
			Summary:     n.Summary,
			Badge:       Badge(n),
			World:       n.Position(),
			Screen:      tr.WorldToScreen(n.Position()),
			Highlighted: n.ID == f.HighlightID,
		})
	}

	for _, l := range g.Links() {
		from, to := g.FindNode(l.From), g.FindNode(l.To)
		if from == nil || to == nil {
			continue
		}
		a, b := Anchor(from), Anchor(to)
		f.Lines = append(f.Lines, Line{
			From:                l.From,
			To:                  l.To,
			Label:               l.Label,
			WorldA:              a,
			WorldB:              b,
			ScreenA:             tr.WorldToScreen(a),
			ScreenB:             tr.WorldToScreen(b),
			TouchesSelectedNode: f.HighlightID != "" && l.Touches(f.HighlightID),
		})
	}

	f.Folders, f.Unassigned = folders(st, f.HighlightID)
	for _, n := range nodes {
		f.AllNodes = append(f.AllNodes, NodeRef{ID: n.ID, Title: n.Title, Active: n.ID == f.HighlightID})
	}

	if selected != nil {
		d := buildDetail(st, selected)
		f.Detail = &d
	}
	f.ContentDump = ContentDump(st)
	f.TextMap = BuildTextMap(st)

	if st.LinkMode != nil {
		f.LinkFrom = st.LinkMode.FromID
		title := st.LinkMode.FromID
		if src := g.FindNode(st.LinkMode.FromID); src != nil {
			title = src.Title
		}
		f.Banner = fmt.Sprintf("Linking from %s: click another node to complete the link.", title)
	}
	return f
}

func folders(st *app.State, active string) ([]Folder, []NodeRef) {
	bubbles := st.Graph.Bubbles()
	members := make(map[string][]NodeRef, len(bubbles))
	for _, b := range bubbles {
		members[b.ID] = []NodeRef{}
	}

	var unassigned []NodeRef
	for _, n := range st.Graph.Nodes() {
		ref := NodeRef{ID: n.ID, Title: n.Title, Active: n.ID == active}
		if len(n.Bubbles) == 0 {
			unassigned = append(unassigned, ref)
			continue
		}
		for _, bid := range n.Bubbles {
			if list, ok := members[bid]; ok {
				members[bid] = append(list, ref)
			}
		}
	}

	out := make([]Folder, 0, len(bubbles))
	for _, b := range bubbles {
		out = append(out, Folder{
			BubbleID: b.ID,
			Title:    b.Title,
			Meta:     fmt.Sprintf("%d nodes", len(members[b.ID])),
			Nodes:    members[b.ID],
		})
	}
	return out, unassigned
}

// NodeAt returns the id of the topmost card under a screen point, or "".
func NodeAt(st *app.State, screen model.Point) string {
	w := st.View.ScreenToWorld(screen)
	nodes := st.Graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if w.X >= n.X && w.X <= n.X+CardWidth && w.Y >= n.Y && w.Y <= n.Y+CardHeight {
			return n.ID
		}
	}
	return ""
}
