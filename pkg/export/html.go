package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/net/html"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// GenerateHTMLPage creates a self-contained page: the rendered map, the
// sidebar folders, the selected node's detail, the text map and the hidden
// content dump. The snapshot is embedded in <script id="initial-data"> so the
// page can be loaded back.
func GenerateHTMLPage(doc Document, now time.Time) (string, error) {
	// Default encoding escapes <, > and &, keeping </script> out of the block.
	data, err := json.MarshalIndent(normalize(doc.Snapshot), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	var svgBuf bytes.Buffer
	if err := WriteSVG(&svgBuf, doc.Frame, doc.Title); err != nil {
		return "", err
	}
	mapSVG := svgBuf.String()
	// drop the XML prolog and doctype svgo writes for standalone files
	if i := strings.Index(mapSVG, "<svg"); i > 0 {
		mapSVG = mapSVG[i:]
	}

	title := doc.Title
	if title == "" {
		title = "Bubble Map"
	}

	detail := `<p class="muted">No node selected.</p>`
	if d := doc.Frame.Detail; d != nil {
		detail = "<h2>" + html.EscapeString(d.Title) + "</h2>" + d.HTML()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        :root {
            --bg: #1e1e2e;
            --bg-secondary: #2a2a3e;
            --bg-tertiary: #242434;
            --fg: #f8f8f2;
            --fg-muted: #a0a0b0;
            --purple: #bd93f9;
            --cyan: #8be9fd;
            --orange: #ffb86c;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { font-family: system-ui, sans-serif; background: var(--bg); color: var(--fg); display: flex; flex-direction: column; height: 100vh; }
        header { background: var(--bg-tertiary); padding: 0.6rem 1.25rem; border-bottom: 2px solid var(--purple); }
        h1 { font-size: 1.1rem; font-weight: 600; }
        main { display: flex; flex: 1; overflow: hidden; }
        nav { width: 240px; overflow-y: auto; background: var(--bg-tertiary); padding: 0.75rem; font-size: 0.85rem; }
        nav h3 { color: var(--cyan); margin-top: 0.75rem; }
        nav .meta { color: var(--fg-muted); font-size: 0.75rem; }
        nav li { list-style: none; padding: 0.15rem 0 0.15rem 0.5rem; cursor: pointer; }
        nav li.active { color: var(--orange); font-weight: 600; }
        #canvas { flex: 1; overflow: auto; }
        #canvas svg { display: block; }
        #canvas g[data-node-id] { cursor: pointer; }
        aside { width: 340px; overflow-y: auto; background: var(--bg-secondary); padding: 1rem; }
        aside h2 { font-size: 1rem; margin-bottom: 0.5rem; }
        aside section { margin-top: 1rem; }
        aside a { color: var(--cyan); }
        .muted { color: var(--fg-muted); }
        footer { padding: 0.75rem 1.25rem; font-size: 0.8rem; color: var(--fg-muted); background: var(--bg-tertiary); }
        footer h4 { color: var(--fg); margin-top: 0.5rem; }
        .hidden-dump { display: none; }
    </style>
</head>
<body>
    <header><h1>%s</h1></header>
    <main>
        <nav>%s
            <h3>All nodes</h3>
            <ul>%s</ul>
        </nav>
        <div id="canvas">%s</div>
        <aside id="detail">%s</aside>
    </main>
    <footer>
%s
        <div>Generated %s</div>
    </footer>
    <div class="hidden-dump">
%s    </div>
    <script type="application/json" id="initial-data">
%s
    </script>
    <script>
document.querySelectorAll('nav li[data-node-id]').forEach(el => {
    el.onclick = () => {
        const card = document.querySelector('#canvas g[data-node-id="' + CSS.escape(el.dataset.nodeId) + '"]');
        if (card) card.scrollIntoView({ behavior: 'smooth', block: 'center', inline: 'center' });
    };
});
    </script>
</body>
</html>
`,
		html.EscapeString(title),
		html.EscapeString(title),
		sidebarHTML(doc.Frame),
		nodeListHTML(doc.Frame.AllNodes),
		mapSVG,
		detail,
		textMapHTML(doc.Frame.TextMap),
		now.Format("2006-01-02 15:04:05"),
		doc.Frame.ContentDump,
		data,
	), nil
}

func sidebarHTML(f present.Frame) string {
	var sb strings.Builder
	for _, folder := range f.Folders {
		sb.WriteString("\n            <h3>" + html.EscapeString(folder.Title) + "</h3>")
		sb.WriteString(`<div class="meta">` + html.EscapeString(folder.Meta) + "</div>")
		sb.WriteString("<ul>" + nodeListHTML(folder.Nodes) + "</ul>")
	}
	return sb.String()
}

func nodeListHTML(refs []present.NodeRef) string {
	var sb strings.Builder
	for _, r := range refs {
		class := ""
		if r.Active {
			class = ` class="active"`
		}
		fmt.Fprintf(&sb, `<li data-node-id="%s"%s>%s</li>`, html.EscapeString(r.ID), class, html.EscapeString(r.Title))
	}
	return sb.String()
}

func textMapHTML(m present.TextMap) string {
	var sb strings.Builder
	sb.WriteString("        <h4>" + present.HeadingBubbles + "</h4>\n        <ul>")
	for _, line := range m.Bubbles {
		sb.WriteString("<li>" + html.EscapeString(line) + "</li>")
	}
	sb.WriteString("</ul>\n        <h4>" + present.HeadingLinks + "</h4>\n        <ul>")
	for _, line := range m.Links {
		sb.WriteString("<li>" + html.EscapeString(line) + "</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// SaveHTMLPage writes the generated page to path.
func SaveHTMLPage(doc Document, path string) error {
	page, err := GenerateHTMLPage(doc, time.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(page), 0644)
}
