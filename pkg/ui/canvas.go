package ui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
)

type cellStyle uint8

const (
	styleNone cellStyle = iota
	styleBubble
	styleBubbleTitle
	styleLine
	styleLineActive
	styleLabel
	styleCard
	styleCardActive
	styleCardSource
	styleCardTitle
	styleBadge
	styleMenu
	styleMenuSelected
)

type cell struct {
	r     rune
	style cellStyle
	cont  bool // right half of a wide rune
}

// Canvas is a character grid standing in for the pixel draw surface. Each
// cell covers CellW x CellH screen units, so the view transform keeps working
// in screen coordinates and only the final rasterisation is cell based.
type Canvas struct {
	Cols, Rows   int
	CellW, CellH float64
	cells        []cell
}

// NewCanvas allocates a blank grid.
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c := &Canvas{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}
	c.cells = make([]cell, cols*rows)
	c.Clear()
	return c
}

// Viewport returns the size of the grid in screen units.
func (c *Canvas) Viewport() (float64, float64) {
	return float64(c.Cols) * c.CellW, float64(c.Rows) * c.CellH
}

// ScreenPoint returns the screen point at the middle of a cell.
func (c *Canvas) ScreenPoint(col, row int) model.Point {
	return model.Point{X: (float64(col) + 0.5) * c.CellW, Y: (float64(row) + 0.5) * c.CellH}
}

// CellAt returns the cell containing a screen point.
func (c *Canvas) CellAt(p model.Point) (int, int) {
	return int(math.Floor(p.X / c.CellW)), int(math.Floor(p.Y / c.CellH))
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.Cols && row < c.Rows
}

func (c *Canvas) set(col, row int, r rune, s cellStyle) {
	if !c.inside(col, row) {
		return
	}
	i := row*c.Cols + col
	// overwriting half of a wide rune blanks the other half
	if c.cells[i].cont && col > 0 {
		c.cells[i-1] = cell{r: ' '}
	}
	if runewidth.RuneWidth(c.cells[i].r) == 2 && col+1 < c.Cols {
		c.cells[i+1] = cell{r: ' '}
	}

	if runewidth.RuneWidth(r) == 2 {
		if col+1 >= c.Cols {
			c.cells[i] = cell{r: ' ', style: s}
			return
		}
		c.cells[i] = cell{r: r, style: s}
		c.cells[i+1] = cell{r: 0, style: s, cont: true}
		return
	}
	c.cells[i] = cell{r: r, style: s}
}

// text writes s starting at col, clipped to maxWidth cells.
func (c *Canvas) text(col, row int, s string, maxWidth int, st cellStyle) {
	if maxWidth <= 0 {
		return
	}
	s = runewidth.Truncate(s, maxWidth, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(col, row, r, st)
		col += w
	}
}

// Rune returns the rune stored at a cell, for inspection.
func (c *Canvas) Rune(col, row int) rune {
	if !c.inside(col, row) {
		return 0
	}
	return c.cells[row*c.Cols+col].r
}

// PlainLine returns a row without styling.
func (c *Canvas) PlainLine(row int) string {
	if row < 0 || row >= c.Rows {
		return ""
	}
	var sb strings.Builder
	for col := 0; col < c.Cols; col++ {
		cl := c.cells[row*c.Cols+col]
		if cl.cont {
			continue
		}
		sb.WriteRune(cl.r)
	}
	return sb.String()
}

// Draw rasterises a frame: bubbles first, then link lines, then cards.
func (c *Canvas) Draw(f present.Frame) {
	c.Clear()
	for _, b := range f.Bubbles {
		c.drawBubble(b)
	}
	for _, l := range f.Lines {
		c.drawLine(l)
	}
	for _, n := range f.Nodes {
		c.drawCard(n, f.Scale, n.ID == f.LinkFrom)
	}
}

func (c *Canvas) drawBubble(b present.BubbleView) {
	cx, cy := b.Screen.X/c.CellW, b.Screen.Y/c.CellH
	rx, ry := b.ScreenRadius/c.CellW, b.ScreenRadius/c.CellH
	if rx < 0.5 && ry < 0.5 {
		c.set(int(cx), int(cy), '∘', styleBubble)
		return
	}
	steps := int(math.Max(24, 2*math.Pi*math.Max(rx, ry)*2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		col := int(math.Round(cx + rx*math.Cos(a)))
		row := int(math.Round(cy + ry*math.Sin(a)))
		c.set(col, row, '·', styleBubble)
	}
	title := b.Title
	width := int(2*rx) - 2
	tw := runewidth.StringWidth(title)
	if tw > width {
		tw = width
	}
	c.text(int(math.Round(cx))-tw/2, int(math.Round(cy-ry))+1, title, width, styleBubbleTitle)
}

func (c *Canvas) drawLine(l present.Line) {
	x0, y0 := c.CellAt(l.ScreenA)
	x1, y1 := c.CellAt(l.ScreenB)
	st := styleLine
	if l.TouchesSelectedNode {
		st = styleLineActive
	}

	ch := lineRune(x1-x0, y1-y0)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	// Bresenham, bounded so a far-off endpoint cannot stall a frame.
	err := dx + dy
	x, y := x0, y0
	for steps := 0; steps < 4*(c.Cols+c.Rows)+dx-dy; steps++ {
		c.set(x, y, ch, st)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		if !c.lineCanReach(x, y, x1, y1, sx, sy) {
			break
		}
	}

	if l.Label != "" {
		mx, my := (x0+x1)/2, (y0+y1)/2
		w := runewidth.StringWidth(l.Label)
		if w > 24 {
			w = 24
		}
		c.text(mx-w/2, my-1, l.Label, 24, styleLabel)
	}
}

// lineCanReach reports whether the rest of a line may still cross the grid.
func (c *Canvas) lineCanReach(x, y, x1, y1, sx, sy int) bool {
	if (sx > 0 && x >= c.Cols) || (sx < 0 && x < 0) {
		return false
	}
	if (sy > 0 && y >= c.Rows) || (sy < 0 && y < 0) {
		return false
	}
	return true
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0 || abs(dx) > 3*abs(dy):
		return '─'
	case dx == 0 || abs(dy) > 3*abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cardCells returns a card's cell rectangle at the given scale.
func (c *Canvas) cardCells(n present.NodeView, scale float64) (col, row, w, h int) {
	col, row = c.CellAt(n.Screen)
	w = int(math.Round(present.CardWidth * scale / c.CellW))
	h = int(math.Round(present.CardHeight * scale / c.CellH))
	if w < 6 {
		w = 6
	}
	if h < 3 {
		h = 3
	}
	return col, row, w, h
}

// NodeAt returns the id of the topmost card drawn over a cell, or "". Cards
// never shrink below their minimum cell size, so this can hit where the world
// rectangle would not.
func (c *Canvas) NodeAt(f present.Frame, col, row int) string {
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		x, y, w, h := c.cardCells(f.Nodes[i], f.Scale)
		if col >= x && col < x+w && row >= y && row < y+h {
			return f.Nodes[i].ID
		}
	}
	return ""
}

func (c *Canvas) drawCard(n present.NodeView, scale float64, source bool) {
	col, row, w, h := c.cardCells(n, scale)
	st := styleCard
	tl, tr, bl, br, hz, vt := '┌', '┐', '└', '┘', '─', '│'
	switch {
	case n.Highlighted:
		st = styleCardActive
		tl, tr, bl, br, hz, vt = '╔', '╗', '╚', '╝', '═', '║'
	case source:
		st = styleCardSource
		tl, tr, bl, br, hz, vt = '┏', '┓', '┗', '┛', '━', '┃'
	}

	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			r := ' '
			switch {
			case y == row && x == col:
				r = tl
			case y == row && x == col+w-1:
				r = tr
			case y == row+h-1 && x == col:
				r = bl
			case y == row+h-1 && x == col+w-1:
				r = br
			case y == row || y == row+h-1:
				r = hz
			case x == col || x == col+w-1:
				r = vt
			}
			c.set(x, y, r, st)
		}
	}

	inner := w - 2
	c.text(col+1, row+1, n.Title, inner, styleCardTitle)
	if h >= 4 && n.Summary != "" {
		c.text(col+1, row+2, n.Summary, inner, st)
	}
	if n.Badge != "" {
		bw := runewidth.StringWidth(n.Badge)
		if h >= 5 {
			c.text(col+w-1-min(bw, inner), row+h-2, n.Badge, inner, styleBadge)
		} else if bw+2 <= inner-runewidth.StringWidth(n.Title) {
			c.text(col+w-1-bw, row+1, n.Badge, bw, styleBadge)
		}
	}
}

// Render produces the styled rows joined by newlines.
func (c *Canvas) Render(t Theme) string {
	styles := canvasStyles(t)
	lines := make([]string, c.Rows)
	for row := 0; row < c.Rows; row++ {
		var sb strings.Builder
		var run strings.Builder
		cur := styleNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == styleNone {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.Cols; col++ {
			cl := c.cells[row*c.Cols+col]
			if cl.cont {
				continue
			}
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}
