package export

import (
	"image/color"
	"math"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// Dark palette shared by the PNG and SVG renderers.
var (
	bgDark        = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	bgCard        = color.RGBA{0x2a, 0x2a, 0x3e, 0xff}
	bgHeader      = color.RGBA{0x24, 0x24, 0x34, 0xe0}
	bubbleFill    = color.RGBA{0x8b, 0xe9, 0xfd, 0x26}
	bubbleStroke  = color.RGBA{0x8b, 0xe9, 0xfd, 0x90}
	cardStroke    = color.RGBA{0x62, 0x72, 0xa4, 0xff}
	cardActive    = color.RGBA{0xff, 0xb8, 0x6c, 0xff}
	edgeNormal    = color.RGBA{0x6b, 0x80, 0xbf, 0xa0}
	edgeActive    = color.RGBA{0xff, 0x79, 0xc6, 0xe0}
	textPrimary   = color.RGBA{0xf8, 0xf8, 0xf2, 0xff}
	textSecondary = color.RGBA{0xa0, 0xa0, 0xb0, 0xff}
	textAccent    = color.RGBA{0xbd, 0x93, 0xf9, 0xff}
)

const (
	sceneMargin  = 40.0
	headerHeight = 70.0
	minSceneW    = 800.0
	minSceneH    = 600.0
)

// scene maps world coordinates onto an image that contains every bubble and
// card, independent of the interactive viewport.
type scene struct {
	minX, minY    float64
	width, height float64
}

func newScene(f present.Frame) scene {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	for _, b := range f.Bubbles {
		grow(b.World.X-b.Radius, b.World.Y-b.Radius, b.World.X+b.Radius, b.World.Y+b.Radius)
	}
	for _, n := range f.Nodes {
		grow(n.World.X, n.World.Y, n.World.X+present.CardWidth, n.World.Y+present.CardHeight)
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	s := scene{
		minX:   minX - sceneMargin,
		minY:   minY - sceneMargin - headerHeight,
		width:  maxX - minX + 2*sceneMargin,
		height: maxY - minY + 2*sceneMargin + headerHeight,
	}
	if s.width < minSceneW {
		s.minX -= (minSceneW - s.width) / 2
		s.width = minSceneW
	}
	if s.height < minSceneH {
		s.height = minSceneH
	}
	return s
}

func (s scene) x(wx float64) float64 { return wx - s.minX }
func (s scene) y(wy float64) float64 { return wy - s.minY }

func (s scene) size() (int, int) {
	return int(math.Ceil(s.width)), int(math.Ceil(s.height))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
