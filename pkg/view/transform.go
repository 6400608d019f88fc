// Package view maps world coordinates to screen coordinates.
//
// The map is affine and uniform over the whole canvas:
//
//	screen = world*Scale + Offset + viewport center
//
// so the offset is measured relative to the centre of the viewport and a zero
// offset puts the world origin in the middle of the canvas.
package view

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/bubblemap/pkg/model"
)

const (
	MinScale     = 0.3
	MaxScale     = 2.5
	DefaultScale = 0.8
)

// Transform holds the pan/zoom state of the canvas.
type Transform struct {
	Scale  float64
	Offset r2.Vec

	width  float64
	height float64
}

// New returns a transform at the given scale (clamped) with no offset.
func New(scale float64) *Transform {
	return &Transform{Scale: Clamp(scale)}
}

// Clamp limits a scale to [MinScale, MaxScale].
func Clamp(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}

// SetViewport records the canvas size in screen pixels.
func (t *Transform) SetViewport(width, height float64) {
	t.width = width
	t.height = height
}

// Viewport returns the canvas size in screen pixels.
func (t *Transform) Viewport() (float64, float64) {
	return t.width, t.height
}

func (t *Transform) center() r2.Vec {
	return r2.Vec{X: t.width / 2, Y: t.height / 2}
}

// PanBy shifts the offset by a screen-space delta. There are no bounds.
func (t *Transform) PanBy(dx, dy float64) {
	t.Offset = r2.Add(t.Offset, r2.Vec{X: dx, Y: dy})
}

// ZoomAt multiplies the scale by factor, clamped, keeping the world point
// under screen fixed.
func (t *Transform) ZoomAt(screen model.Point, factor float64) {
	next := Clamp(t.Scale * factor)
	if next == t.Scale {
		return
	}
	p := r2.Sub(toVec(screen), t.center())
	t.Offset = r2.Add(p, r2.Scale(next/t.Scale, r2.Sub(t.Offset, p)))
	t.Scale = next
}

// WorldToScreen maps a world point to screen pixels.
func (t *Transform) WorldToScreen(world model.Point) model.Point {
	v := r2.Add(r2.Add(r2.Scale(t.Scale, toVec(world)), t.Offset), t.center())
	return toPoint(v)
}

// ScreenToWorld maps screen pixels back to a world point.
func (t *Transform) ScreenToWorld(screen model.Point) model.Point {
	v := r2.Sub(r2.Sub(toVec(screen), t.center()), t.Offset)
	return toPoint(r2.Scale(1/t.Scale, v))
}

// CenterOn sets the offset so that world lands in the middle of the viewport.
func (t *Transform) CenterOn(world model.Point) {
	t.Offset = r2.Scale(-t.Scale, toVec(world))
}

// Center returns the world point currently in the middle of the viewport.
func (t *Transform) Center() model.Point {
	return toPoint(r2.Scale(-1/t.Scale, t.Offset))
}

// Reset restores the given scale and a zero offset.
func (t *Transform) Reset(scale float64) {
	t.Scale = Clamp(scale)
	t.Offset = r2.Vec{}
}

func toVec(p model.Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func toPoint(v r2.Vec) model.Point {
	return model.Point{X: v.X, Y: v.Y}
}
