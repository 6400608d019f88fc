package present

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// LinkedNode is an outbound reference listed under the detail content.
type LinkedNode struct {
	ID    string
	Label string
}

// Detail is the detail panel for the selected node.
type Detail struct {
	NodeID      string
	Title       string
	ContentHTML string
	Linked      []LinkedNode
}

func buildDetail(st *app.State, n *model.Node) Detail {
	d := Detail{NodeID: n.ID, Title: n.Title, ContentHTML: n.ContentHTML}
	for _, l := range st.Graph.LinksFrom(n.ID) {
		target := st.Graph.FindNode(l.To)
		if target == nil {
			continue
		}
		label := l.Label
		if label == "" {
			label = target.Title
		}
		d.Linked = append(d.Linked, LinkedNode{ID: target.ID, Label: label})
	}
	return d
}

// DetailFor builds the detail panel of any node, selected or not.
func DetailFor(st *app.State, id string) (Detail, bool) {
	n := st.Graph.FindNode(id)
	if n == nil {
		return Detail{}, false
	}
	return buildDetail(st, n), true
}

// HTML renders the panel document: the raw content followed by a
// "Linked nodes" section when the node has outbound links.
func (d Detail) HTML() string {
	var sb strings.Builder
	sb.WriteString(d.ContentHTML)
	if len(d.Linked) == 0 {
		return sb.String()
	}
	sb.WriteString("<section><h4>Linked nodes</h4><ul>")
	for _, ln := range d.Linked {
		sb.WriteString(`<li><a href="#" data-node-id="`)
		sb.WriteString(html.EscapeString(ln.ID))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(ln.Label))
		sb.WriteString("</a></li>")
	}
	sb.WriteString("</ul></section>")
	return sb.String()
}

// References reports whether the panel lists a link to id.
func (d Detail) References(id string) bool {
	for _, ln := range d.Linked {
		if ln.ID == id {
			return true
		}
	}
	return false
}
