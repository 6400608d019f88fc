package loader

import "github.com/vanderheijden86/bubblemap/pkg/model"

// DefaultPlacements positions nodes by load order.
var DefaultPlacements = []model.Point{
	{X: -200, Y: -420},
	{X: -220, Y: -230},
	{X: -900, Y: -260},
	{X: -40, Y: -120},
	{X: -40, Y: 40},
	{X: 480, Y: -260},
	{X: 820, Y: -80},
	{X: 40, Y: 210},
	{X: -430, Y: 260},
	{X: 210, Y: -10},
	{X: 430, Y: 260},
	{X: 820, Y: 260},
	{X: -1150, Y: 260},
	{X: -70, Y: 420},
	{X: 80, Y: 600},
}

// FallbackStep is the vertical spacing used past the end of the table.
const FallbackStep = 60

// Placement returns the world position of the idx-th loaded node. Past the
// table's end nodes stack vertically at x=0.
func Placement(idx int, table []model.Point) model.Point {
	if idx >= 0 && idx < len(table) {
		return table[idx]
	}
	return model.Point{X: 0, Y: float64(idx * FallbackStep)}
}

// Place assigns positions to nodes in load order. A nil table means the
// default one.
func Place(nodes []model.Node, table []model.Point) {
	if table == nil {
		table = DefaultPlacements
	}
	for i := range nodes {
		p := Placement(i, table)
		nodes[i].X, nodes[i].Y = p.X, p.Y
	}
}
