package present

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vanderheijden86/bubblemap/pkg/app"
)

const (
	HeadingBubbles = "Bubbles and their nodes"
	HeadingLinks   = "Node links (logical connections)"
)

// TextMap is the plain-language summary of the graph.
type TextMap struct {
	Bubbles []string
	Links   []string
}

// String renders both sections as plain text.
func (m TextMap) String() string {
	var sb strings.Builder
	sb.WriteString(HeadingBubbles + "\n")
	for _, line := range m.Bubbles {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + HeadingLinks + "\n")
	for _, line := range m.Links {
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// BuildTextMap lists each bubble with its member titles and each resolvable
// link as a sentence.
func BuildTextMap(st *app.State) TextMap {
	var m TextMap
	nodes := st.Graph.Nodes()
	for _, b := range st.Graph.Bubbles() {
		var titles []string
		for _, n := range nodes {
			if n.InBubble(b.ID) {
				titles = append(titles, n.Title)
			}
		}
		joined := strings.Join(titles, "; ")
		if joined == "" {
			joined = "no nodes yet"
		}
		m.Bubbles = append(m.Bubbles, fmt.Sprintf("%s: %s.", b.Title, joined))
	}
	for _, l := range st.Graph.Links() {
		from, to := st.Graph.FindNode(l.From), st.Graph.FindNode(l.To)
		if from == nil || to == nil {
			continue
		}
		m.Links = append(m.Links, fmt.Sprintf("%s → %s (%s).", from.Title, to.Title, l.Label))
	}
	return m
}

// ContentDump renders every node's full content as hidden HTML blocks.
func ContentDump(st *app.State) string {
	var sb strings.Builder
	for _, n := range st.Graph.Nodes() {
		bubbles := "none"
		if len(n.Bubbles) > 0 {
			bubbles = strings.Join(n.Bubbles, ", ")
		}
		sb.WriteString(`<div class="hidden-node"><h3>`)
		sb.WriteString(html.EscapeString(n.Title))
		sb.WriteString("</h3><p>Bubbles: ")
		sb.WriteString(html.EscapeString(bubbles))
		sb.WriteString("</p><div>")
		sb.WriteString(n.ContentHTML)
		sb.WriteString("</div></div>\n")
	}
	return sb.String()
}
