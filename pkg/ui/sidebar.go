// sidebar.go - bubble folders and the flat node list
package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// allNodesKey is the folder key of the flat list of every node.
const allNodesKey = "\x00all"

// SidebarState is the persisted collapse state of the sidebar.
//
//	{
//	  "version": 1,
//	  "collapsed": {"core": true}
//	}
//
// Only explicit changes are stored. A missing or corrupt file means every
// folder is expanded.
type SidebarState struct {
	Version   int             `json:"version"`
	Collapsed map[string]bool `json:"collapsed"`
}

// SidebarStateVersion is the current schema version.
const SidebarStateVersion = 1

type rowKind int

const (
	rowFolder rowKind = iota
	rowNode
)

type sidebarRow struct {
	kind   rowKind
	folder string // folder key
	nodeID string
	title  string
	meta   string
	active bool
	count  int
}

// SidebarModel lists the bubble folders with their member nodes, followed by
// an "All nodes" folder.
type SidebarModel struct {
	theme     Theme
	rows      []sidebarRow // visible rows
	folders   []sidebarFolder
	collapsed map[string]bool
	cursor    int
	offset    int
	width     int
	height    int
	focused   bool
	statePath string
}

type sidebarFolder struct {
	key   string
	title string
	meta  string
	nodes []present.NodeRef
}

// NewSidebarModel creates an empty sidebar.
func NewSidebarModel(theme Theme) SidebarModel {
	return SidebarModel{theme: theme, collapsed: make(map[string]bool)}
}

// SetStatePath enables persistence of the collapse state and loads it.
func (s *SidebarModel) SetStatePath(path string) {
	s.statePath = path
	s.loadState()
}

func (s *SidebarModel) loadState() {
	if s.statePath == "" {
		return
	}
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		return
	}
	var st SidebarState
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("warning: invalid sidebar state file, using defaults: %v", err)
		return
	}
	for k, v := range st.Collapsed {
		s.collapsed[k] = v
	}
	s.rebuildRows()
}

func (s *SidebarModel) saveState() {
	if s.statePath == "" {
		return
	}
	st := SidebarState{Version: SidebarStateVersion, Collapsed: make(map[string]bool)}
	for k, v := range s.collapsed {
		if v && k != allNodesKey {
			st.Collapsed[k] = true
		}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal sidebar state: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.statePath), 0o755); err != nil {
		log.Printf("warning: failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(s.statePath, data, 0o644); err != nil {
		log.Printf("warning: failed to write sidebar state to %s: %v", s.statePath, err)
	}
}

// SetSize updates the available dimensions.
func (s *SidebarModel) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.ensureVisible()
}

// SetFocused toggles the cursor highlight.
func (s *SidebarModel) SetFocused(f bool) { s.focused = f }

// Focused reports whether the sidebar has keyboard focus.
func (s *SidebarModel) Focused() bool { return s.focused }

// Build replaces the folders with the frame's and keeps the cursor on the
// same row where possible.
func (s *SidebarModel) Build(f present.Frame) {
	prev, hadPrev := s.current()

	s.folders = s.folders[:0]
	for _, fo := range f.Folders {
		s.folders = append(s.folders, sidebarFolder{key: fo.BubbleID, title: fo.Title, meta: fo.Meta, nodes: fo.Nodes})
	}
	s.folders = append(s.folders, sidebarFolder{
		key:   allNodesKey,
		title: "All nodes",
		meta:  fmt.Sprintf("%d", len(f.AllNodes)),
		nodes: f.AllNodes,
	})
	s.rebuildRows()

	if hadPrev {
		for i, r := range s.rows {
			if r.kind == prev.kind && r.folder == prev.folder && r.nodeID == prev.nodeID {
				s.cursor = i
				break
			}
		}
	}
	s.ensureVisible()
}

func (s *SidebarModel) rebuildRows() {
	s.rows = s.rows[:0]
	for _, fo := range s.folders {
		s.rows = append(s.rows, sidebarRow{kind: rowFolder, folder: fo.key, title: fo.title, meta: fo.meta, count: len(fo.nodes)})
		if s.collapsed[fo.key] {
			continue
		}
		for _, n := range fo.nodes {
			s.rows = append(s.rows, sidebarRow{kind: rowNode, folder: fo.key, nodeID: n.ID, title: n.Title, active: n.Active})
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *SidebarModel) current() (sidebarRow, bool) {
	if s.cursor >= 0 && s.cursor < len(s.rows) {
		return s.rows[s.cursor], true
	}
	return sidebarRow{}, false
}

// SelectedNodeID returns the node under the cursor, or "" on a folder row.
func (s *SidebarModel) SelectedNodeID() string {
	if r, ok := s.current(); ok && r.kind == rowNode {
		return r.nodeID
	}
	return ""
}

// MoveDown moves the cursor down.
func (s *SidebarModel) MoveDown() {
	if s.cursor < len(s.rows)-1 {
		s.cursor++
	}
	s.ensureVisible()
}

// MoveUp moves the cursor up.
func (s *SidebarModel) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
	s.ensureVisible()
}

// PageDown moves the cursor a screen down.
func (s *SidebarModel) PageDown() {
	s.cursor = min(s.cursor+max(s.height-1, 1), max(len(s.rows)-1, 0))
	s.ensureVisible()
}

// PageUp moves the cursor a screen up.
func (s *SidebarModel) PageUp() {
	s.cursor = max(s.cursor-max(s.height-1, 1), 0)
	s.ensureVisible()
}

// Toggle collapses or expands the folder under the cursor, or the folder the
// cursor's node belongs to.
func (s *SidebarModel) Toggle() {
	r, ok := s.current()
	if !ok {
		return
	}
	s.collapsed[r.folder] = !s.collapsed[r.folder]
	s.rebuildRows()
	for i, row := range s.rows {
		if row.kind == rowFolder && row.folder == r.folder {
			s.cursor = i
			break
		}
	}
	s.ensureVisible()
	s.saveState()
}

// SelectByID moves the cursor to the first row for a node. It prefers the
// bubble folders over the All nodes list.
func (s *SidebarModel) SelectByID(id string) bool {
	for i, r := range s.rows {
		if r.kind == rowNode && r.nodeID == id {
			s.cursor = i
			s.ensureVisible()
			return true
		}
	}
	return false
}

// ClickRow handles a click on the y-th visible line. Folder rows toggle; node
// rows return their id.
func (s *SidebarModel) ClickRow(y int) (string, bool) {
	i := s.offset + y
	if y < 0 || i >= len(s.rows) {
		return "", false
	}
	s.cursor = i
	if s.rows[i].kind == rowFolder {
		s.Toggle()
		return "", false
	}
	return s.rows[i].nodeID, true
}

func (s *SidebarModel) ensureVisible() {
	h := s.height
	if h <= 0 {
		return
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+h {
		s.offset = s.cursor - h + 1
	}
	if maxOff := len(s.rows) - h; s.offset > maxOff {
		s.offset = max(maxOff, 0)
	}
}

// RowCount returns the number of visible rows.
func (s *SidebarModel) RowCount() int { return len(s.rows) }

// View renders the visible rows.
func (s *SidebarModel) View() string {
	if len(s.rows) == 0 {
		return s.theme.Renderer.NewStyle().Foreground(s.theme.Muted).Render("No nodes.")
	}
	end := len(s.rows)
	if s.height > 0 && s.offset+s.height < end {
		end = s.offset + s.height
	}
	lines := make([]string, 0, end-s.offset)
	for i := s.offset; i < end; i++ {
		line := s.renderRow(s.rows[i])
		if s.focused && i == s.cursor {
			line = s.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *SidebarModel) renderRow(r sidebarRow) string {
	st := s.theme.Renderer.NewStyle()
	width := s.width
	if width <= 0 {
		width = 28
	}

	if r.kind == rowFolder {
		indicator := "▾"
		if s.collapsed[r.folder] {
			indicator = "▸"
		}
		meta := r.meta
		if meta == "" {
			meta = fmt.Sprintf("%d", r.count)
		}
		title := runewidth.Truncate(r.title, max(width-runewidth.StringWidth(meta)-4, 1), "…")
		pad := width - 2 - runewidth.StringWidth(title) - runewidth.StringWidth(meta) - 1
		return st.Foreground(s.theme.Secondary).Render(indicator+" ") +
			st.Foreground(s.theme.Primary).Bold(true).Render(title) +
			strings.Repeat(" ", max(pad, 1)) +
			st.Foreground(s.theme.Muted).Render(meta)
	}

	title := runewidth.Truncate(r.title, max(width-4, 1), "…")
	if r.active {
		return "  " + st.Foreground(s.theme.Highlight).Bold(true).Render("● "+title)
	}
	return "  " + st.Foreground(s.theme.Subtext).Render("• ") + title
}
