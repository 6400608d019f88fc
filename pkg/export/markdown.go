package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
)

var stripTags = bluemonday.StrictPolicy()

// GenerateMarkdown creates a report of bubbles, nodes and links
func GenerateMarkdown(doc Document, now time.Time) string {
	var sb strings.Builder
	snap := doc.Snapshot

	title := doc.Title
	if title == "" {
		title = "Bubble Map"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Bubbles**: %d\n", len(snap.Bubbles)))
	sb.WriteString(fmt.Sprintf("- **Nodes**: %d\n", len(snap.Nodes)))
	sb.WriteString(fmt.Sprintf("- **Links**: %d\n\n", len(snap.Links)))

	byID := make(map[string]model.Node, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}

	sb.WriteString("## Link Graph\n\n")
	sb.WriteString("```mermaid\ngraph LR\n")
	for i, n := range snap.Nodes {
		sb.WriteString(fmt.Sprintf("    n%d[\"%s\"]\n", i, mermaidSafe(n.Title)))
	}
	index := make(map[string]int, len(snap.Nodes))
	for i := len(snap.Nodes) - 1; i >= 0; i-- {
		index[snap.Nodes[i].ID] = i
	}
	hasLinks := false
	for _, l := range snap.Links {
		from, okFrom := index[l.From]
		to, okTo := index[l.To]
		if !okFrom || !okTo {
			continue
		}
		if l.Label != "" {
			sb.WriteString(fmt.Sprintf("    n%d -->|%s| n%d\n", from, mermaidSafe(l.Label), to))
		} else {
			sb.WriteString(fmt.Sprintf("    n%d --> n%d\n", from, to))
		}
		hasLinks = true
	}
	if !hasLinks {
		sb.WriteString("    NoLinks[No Links]\n")
	}
	sb.WriteString("```\n\n---\n\n")

	sb.WriteString("## " + present.HeadingBubbles + "\n\n")
	for _, line := range doc.Frame.TextMap.Bubbles {
		sb.WriteString("- " + line + "\n")
	}
	sb.WriteString("\n## " + present.HeadingLinks + "\n\n")
	for _, line := range doc.Frame.TextMap.Links {
		sb.WriteString("- " + line + "\n")
	}
	sb.WriteString("\n---\n\n")

	for _, n := range snap.Nodes {
		sb.WriteString(fmt.Sprintf("## %s\n\n", n.Title))
		sb.WriteString("| ID | Bubbles |\n|---|---|\n")
		bubbles := "none"
		if len(n.Bubbles) > 0 {
			bubbles = strings.Join(n.Bubbles, ", ")
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s |\n\n", n.ID, bubbles))

		if n.Summary != "" {
			sb.WriteString("> " + n.Summary + "\n\n")
		}
		if text := strings.TrimSpace(stripTags.Sanitize(n.ContentHTML)); text != "" {
			sb.WriteString(text + "\n\n")
		}

		var linked []string
		for _, l := range snap.Links {
			if l.From != n.ID {
				continue
			}
			target, ok := byID[l.To]
			if !ok {
				continue
			}
			label := l.Label
			if label == "" {
				label = target.Title
			}
			linked = append(linked, fmt.Sprintf("- %s (`%s`)", label, target.ID))
		}
		if len(linked) > 0 {
			sb.WriteString("### Linked nodes\n\n")
			sb.WriteString(strings.Join(linked, "\n") + "\n\n")
		}
		sb.WriteString("---\n\n")
	}
	return sb.String()
}

func mermaidSafe(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.NewReplacer("[", "", "]", "", "(", "", ")", "", "|", "/").Replace(s)
	if len([]rune(s)) > 30 {
		s = string([]rune(s)[:27]) + "..."
	}
	return s
}

// SaveMarkdownToFile writes the generated markdown to a file
func SaveMarkdownToFile(doc Document, filename string) error {
	return os.WriteFile(filename, []byte(GenerateMarkdown(doc, time.Now())), 0644)
}
