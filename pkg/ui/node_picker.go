package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// JumpToNodeMsg is sent when the user picks a node to jump to.
type JumpToNodeMsg struct {
	ID string
}

// ClosePickerMsg is sent when the picker is dismissed.
type ClosePickerMsg struct{}

const pickerMaxRows = 10

// pickerSource adapts the node list to fuzzy.Source, matching on
// "title id".
type pickerSource []present.NodeRef

func (s pickerSource) String(i int) string { return s[i].Title + " " + s[i].ID }
func (s pickerSource) Len() int            { return len(s) }

// NodePickerModel is a filterable jump list over every node.
type NodePickerModel struct {
	entries  []present.NodeRef
	filtered []int
	cursor   int
	input    textinput.Model
	width    int
	height   int
	theme    Theme
}

// NewNodePicker creates a focused picker over entries.
func NewNodePicker(entries []present.NodeRef, theme Theme) NodePickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 80
	ti.Width = 30
	ti.Focus()

	m := NodePickerModel{entries: entries, input: ti, theme: theme}
	m.applyFilter()
	return m
}

// SetSize updates the picker dimensions.
func (m *NodePickerModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Init starts the cursor blink.
func (m NodePickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keyboard input.
func (m NodePickerModel) Update(msg tea.Msg) (NodePickerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	switch km.String() {
	case "esc", "ctrl+c":
		m.input.Blur()
		return m, func() tea.Msg { return ClosePickerMsg{} }
	case "enter":
		id := m.SelectedID()
		if id == "" {
			return m, nil
		}
		m.input.Blur()
		return m, func() tea.Msg { return JumpToNodeMsg{ID: id} }
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *NodePickerModel) applyFilter() {
	query := strings.TrimSpace(m.input.Value())
	m.filtered = make([]int, 0, len(m.entries))
	if query == "" {
		for i := range m.entries {
			m.filtered = append(m.filtered, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, pickerSource(m.entries)) {
			m.filtered = append(m.filtered, match.Index)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// SelectedID returns the highlighted node id, or "" when nothing matches.
func (m NodePickerModel) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return ""
	}
	return m.entries[m.filtered[m.cursor]].ID
}

// MatchCount returns the number of entries passing the filter.
func (m NodePickerModel) MatchCount() int { return len(m.filtered) }

// View renders the picker as a centred box.
func (m NodePickerModel) View() string {
	t := m.theme
	r := t.Renderer
	width := m.width
	if width == 0 {
		width = 60
	}
	height := m.height
	if height == 0 {
		height = 20
	}
	boxWidth := min(max(width/2, 30), width-4)

	var lines []string
	lines = append(lines, r.NewStyle().Foreground(t.Primary).Bold(true).Render("Jump to node"))
	lines = append(lines, m.input.View())
	lines = append(lines, "")

	start := 0
	if m.cursor >= pickerMaxRows {
		start = m.cursor - pickerMaxRows + 1
	}
	end := min(start+pickerMaxRows, len(m.filtered))
	for i := start; i < end; i++ {
		e := m.entries[m.filtered[i]]
		title := runewidth.Truncate(e.Title, boxWidth-8, "…")
		if i == m.cursor {
			lines = append(lines, r.NewStyle().Foreground(t.Primary).Bold(true).Render("> "+title))
		} else {
			lines = append(lines, r.NewStyle().Foreground(t.Base.GetForeground()).Render("  "+title))
		}
	}
	if len(m.filtered) == 0 {
		lines = append(lines, r.NewStyle().Foreground(t.Muted).Render("  no matches"))
	}

	lines = append(lines, "")
	lines = append(lines, r.NewStyle().Foreground(t.Secondary).Italic(true).
		Render(fmt.Sprintf("%d/%d  ↑↓: move | enter: jump | esc: close", len(m.filtered), len(m.entries))))

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
