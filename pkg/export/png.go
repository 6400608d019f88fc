package export

import (
	"fmt"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

func loadFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RenderPNG draws the whole map (bubbles, link lines and node cards) to a
// PNG file.
func RenderPNG(f present.Frame, title, path string) error {
	dc, err := drawPNG(f, title)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func drawPNG(f present.Frame, title string) (*gg.Context, error) {
	s := newScene(f)
	w, h := s.size()
	dc := gg.NewContext(w, h)

	dc.SetColor(bgDark)
	dc.Clear()

	face, err := loadFace(13)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	for _, b := range f.Bubbles {
		cx, cy := s.x(b.World.X), s.y(b.World.Y)
		dc.SetColor(bubbleFill)
		dc.DrawCircle(cx, cy, b.Radius)
		dc.Fill()
		dc.SetLineWidth(2)
		dc.SetColor(bubbleStroke)
		dc.DrawCircle(cx, cy, b.Radius)
		dc.Stroke()
		dc.SetColor(textAccent)
		dc.DrawStringAnchored(truncate(b.Title, 40), cx, cy-b.Radius+18, 0.5, 0.5)
	}

	for _, l := range f.Lines {
		c := edgeNormal
		if l.TouchesSelectedNode {
			c = edgeActive
		}
		x1, y1 := s.x(l.WorldA.X), s.y(l.WorldA.Y)
		x2, y2 := s.x(l.WorldB.X), s.y(l.WorldB.Y)
		dc.SetColor(c)
		dc.SetLineWidth(2)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		drawArrowHead(dc, x1, y1, x2, y2, c)
		if l.Label != "" {
			dc.SetColor(textSecondary)
			dc.DrawStringAnchored(truncate(l.Label, 28), (x1+x2)/2, (y1+y2)/2-8, 0.5, 0.5)
		}
	}

	for _, n := range f.Nodes {
		x, y := s.x(n.World.X), s.y(n.World.Y)
		dc.SetColor(color.RGBA{0, 0, 0, 0x40})
		dc.DrawRoundedRectangle(x+3, y+3, present.CardWidth, present.CardHeight, 8)
		dc.Fill()
		dc.SetColor(bgCard)
		dc.DrawRoundedRectangle(x, y, present.CardWidth, present.CardHeight, 8)
		dc.Fill()

		stroke := cardStroke
		width := 1.5
		if n.Highlighted {
			stroke = cardActive
			width = 3
		}
		dc.SetColor(stroke)
		dc.SetLineWidth(width)
		dc.DrawRoundedRectangle(x, y, present.CardWidth, present.CardHeight, 8)
		dc.Stroke()

		dc.SetColor(textPrimary)
		dc.DrawStringAnchored(truncate(n.Title, 26), x+12, y+18, 0, 0.5)
		if n.Summary != "" {
			dc.SetColor(textSecondary)
			dc.DrawStringAnchored(truncate(n.Summary, 30), x+12, y+36, 0, 0.5)
		}
		if n.Badge != "" {
			dc.SetColor(textAccent)
			dc.DrawStringAnchored(n.Badge, x+present.CardWidth-10, y+present.CardHeight-10, 1, 0.5)
		}
	}

	drawHeader(dc, w, title, f)
	return dc, nil
}

// drawArrowHead points at the target anchor from the direction of the line.
func drawArrowHead(dc *gg.Context, x1, y1, x2, y2 float64, c color.RGBA) {
	angle := math.Atan2(y2-y1, x2-x1)
	// stop at the card edge rather than the anchor
	back := present.CardHeight / 2
	ax := x2 - back*math.Cos(angle)
	ay := y2 - back*math.Sin(angle)
	const size = 9.0
	p1x := ax - size*math.Cos(angle-math.Pi/7)
	p1y := ay - size*math.Sin(angle-math.Pi/7)
	p2x := ax - size*math.Cos(angle+math.Pi/7)
	p2y := ay - size*math.Sin(angle+math.Pi/7)

	dc.SetColor(c)
	dc.MoveTo(ax, ay)
	dc.LineTo(p1x, p1y)
	dc.LineTo(p2x, p2y)
	dc.ClosePath()
	dc.Fill()
}

func drawHeader(dc *gg.Context, width int, title string, f present.Frame) {
	if title == "" {
		title = "Bubble Map"
	}
	dc.SetColor(bgHeader)
	dc.DrawRoundedRectangle(20, 12, float64(width)-40, 50, 10)
	dc.Fill()

	dc.SetColor(textPrimary)
	dc.DrawStringAnchored(truncate(title, 60), 36, 30, 0, 0.5)
	dc.SetColor(textSecondary)
	dc.DrawStringAnchored(fmt.Sprintf("%d bubbles · %d nodes · %d links",
		len(f.Bubbles), len(f.Nodes), len(f.Lines)), 36, 48, 0, 0.5)
}
