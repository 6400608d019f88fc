package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/microcosm-cc/bluemonday"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// DetailModel shows the selected node's content and its outbound links.
type DetailModel struct {
	theme    Theme
	viewport viewport.Model
	md       *MarkdownRenderer
	policy   *bluemonday.Policy // nil renders content as given
	detail   *present.Detail
	width    int
	height   int
}

// NewDetailModel creates the panel. A glamour style name selects that style,
// while "theme" or "" follow the UI palette; sanitize strips unsafe markup
// before rendering.
func NewDetailModel(theme Theme, style string, sanitize bool) DetailModel {
	d := DetailModel{
		theme:    theme,
		viewport: viewport.New(40, 10),
		md:       NewMarkdownRendererWithStyle(38, style, theme),
	}
	if sanitize {
		d.policy = bluemonday.UGCPolicy()
	}
	return d
}

// SetSize resizes the panel and rewraps the content.
func (d *DetailModel) SetSize(width, height int) {
	d.width, d.height = width, height
	d.viewport.Width = width
	d.viewport.Height = max(height-1, 1)
	w := max(width-2, 10)
	switch {
	case !d.md.UsesTheme():
		d.md.SetWidth(w)
	case w != d.md.width:
		d.md.SetWidthWithTheme(w, d.theme)
	}
	d.refresh()
}

// SetDetail replaces the shown node. The scroll position resets when the
// node changes.
func (d *DetailModel) SetDetail(det *present.Detail) {
	changed := d.detail == nil || det == nil || d.detail.NodeID != det.NodeID
	d.detail = det
	d.refresh()
	if changed {
		d.viewport.GotoTop()
	}
}

// LinkedID returns the id of the n-th (1-based) linked node.
func (d *DetailModel) LinkedID(n int) (string, bool) {
	if d.detail == nil || n < 1 || n > len(d.detail.Linked) {
		return "", false
	}
	return d.detail.Linked[n-1].ID, true
}

// Markdown returns the document rendered into the viewport.
func (d *DetailModel) Markdown() string {
	if d.detail == nil {
		return "_No node selected._"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.detail.Title)

	content := d.detail.ContentHTML
	if d.policy != nil {
		content = d.policy.Sanitize(content)
	}
	if body := htmlToMarkdown(content); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	if len(d.detail.Linked) > 0 {
		sb.WriteString("#### Linked nodes\n\n")
		for i, ln := range d.detail.Linked {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, ln.Label)
		}
	}
	return sb.String()
}

func (d *DetailModel) refresh() {
	md := d.Markdown()
	out, err := d.md.Render(md)
	if err != nil {
		out = md
	}
	d.viewport.SetContent(strings.TrimRight(out, "\n"))
}

// Update scrolls the viewport.
func (d DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// ScrollDown scrolls by n lines.
func (d *DetailModel) ScrollDown(n int) { d.viewport.LineDown(n) }

// ScrollUp scrolls by n lines.
func (d *DetailModel) ScrollUp(n int) { d.viewport.LineUp(n) }

// View renders the panel with a scroll indicator.
func (d DetailModel) View() string {
	r := d.theme.Renderer
	footer := r.NewStyle().Foreground(d.theme.Muted).
		Render(fmt.Sprintf("%3.f%%", d.viewport.ScrollPercent()*100))
	return d.viewport.View() + "\n" + footer
}
