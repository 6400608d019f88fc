package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/bubblemap/pkg/interaction"
)

// ContextMenuModel is the node menu drawn over the canvas at the point it
// was opened.
type ContextMenuModel struct {
	menu          *interaction.Menu
	selectedIndex int
}

// NewContextMenuModel wraps an open menu.
func NewContextMenuModel(m *interaction.Menu) ContextMenuModel {
	return ContextMenuModel{menu: m}
}

// Open reports whether a menu is shown.
func (m *ContextMenuModel) Open() bool { return m.menu != nil }

// Close hides the menu.
func (m *ContextMenuModel) Close() {
	m.menu = nil
	m.selectedIndex = 0
}

// MoveUp moves the selection up.
func (m *ContextMenuModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves the selection down.
func (m *ContextMenuModel) MoveDown() {
	if m.menu != nil && m.selectedIndex < len(m.menu.Items)-1 {
		m.selectedIndex++
	}
}

// Selected returns the highlighted action.
func (m *ContextMenuModel) Selected() (interaction.MenuAction, bool) {
	if m.menu == nil || m.selectedIndex >= len(m.menu.Items) {
		return 0, false
	}
	return m.menu.Items[m.selectedIndex].Action, true
}

func (m *ContextMenuModel) width() int {
	w := 0
	for _, it := range m.menu.Items {
		w = max(w, runewidth.StringWidth(it.Label))
	}
	return w + 4
}

// rect returns the menu's cell rectangle, nudged to stay on the canvas.
func (m *ContextMenuModel) rect(c *Canvas) (col, row, w, h int) {
	col, row = c.CellAt(m.menu.At)
	w, h = m.width(), len(m.menu.Items)+2
	if col+w > c.Cols {
		col = c.Cols - w
	}
	if row+h > c.Rows {
		row = c.Rows - h
	}
	return max(col, 0), max(row, 0), w, h
}

// ItemAt returns the action under a cell, if any.
func (m *ContextMenuModel) ItemAt(c *Canvas, col, row int) (interaction.MenuAction, bool) {
	if m.menu == nil {
		return 0, false
	}
	x, y, w, _ := m.rect(c)
	i := row - y - 1
	if col <= x || col >= x+w-1 || i < 0 || i >= len(m.menu.Items) {
		return 0, false
	}
	return m.menu.Items[i].Action, true
}

// Contains reports whether a cell lies inside the menu box.
func (m *ContextMenuModel) Contains(c *Canvas, col, row int) bool {
	if m.menu == nil {
		return false
	}
	x, y, w, h := m.rect(c)
	return col >= x && col < x+w && row >= y && row < y+h
}

// Draw paints the menu onto the canvas.
func (m *ContextMenuModel) Draw(c *Canvas) {
	if m.menu == nil {
		return
	}
	x, y, w, h := m.rect(c)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r := ' '
			switch {
			case row == y && col == x:
				r = '╭'
			case row == y && col == x+w-1:
				r = '╮'
			case row == y+h-1 && col == x:
				r = '╰'
			case row == y+h-1 && col == x+w-1:
				r = '╯'
			case row == y || row == y+h-1:
				r = '─'
			case col == x || col == x+w-1:
				r = '│'
			}
			c.set(col, row, r, styleMenu)
		}
	}
	for i, it := range m.menu.Items {
		st, prefix := styleMenu, " "
		if i == m.selectedIndex {
			st, prefix = styleMenuSelected, ">"
		}
		c.text(x+1, y+1+i, prefix+" "+it.Label, w-2, st)
	}
}
