package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/net/html"

	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// RenderSVG writes the map as a standalone SVG file.
func RenderSVG(f present.Frame, title, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(file, f, title); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSVG renders the map to w.
func WriteSVG(w io.Writer, f present.Frame, title string) error {
	s := newScene(f)
	width, height := s.size()
	canvas := svg.New(w)
	canvas.Start(width, height)

	canvas.Def()
	canvas.Filter("shadow")
	canvas.FeGaussianBlur(svg.Filterspec{In: "SourceAlpha", Result: "blur"}, 3, 3)
	canvas.FeOffset(svg.Filterspec{In: "blur", Result: "offsetBlur"}, 2, 2)
	canvas.FeMerge([]string{"offsetBlur", "SourceGraphic"})
	canvas.Fend()
	canvas.Marker("arrow", 10, 5, 10, 10, `orient="auto"`)
	canvas.Path("M0,0 L10,5 L0,10 z", "fill:"+cssRGBA(edgeNormal))
	canvas.MarkerEnd()
	canvas.Marker("arrow-active", 10, 5, 10, 10, `orient="auto"`)
	canvas.Path("M0,0 L10,5 L0,10 z", "fill:"+cssRGBA(edgeActive))
	canvas.MarkerEnd()
	canvas.DefEnd()

	canvas.Rect(0, 0, width, height, "fill:"+cssRGBA(bgDark))

	canvas.Gid("bubbles")
	for _, b := range f.Bubbles {
		cx, cy, r := px(s.x(b.World.X)), px(s.y(b.World.Y)), px(b.Radius)
		canvas.Circle(cx, cy, r, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", cssRGBA(bubbleFill), cssRGBA(bubbleStroke)))
		canvas.Text(cx, cy-r+20, truncate(b.Title, 40),
			fmt.Sprintf("fill:%s;font-size:14px;font-family:system-ui,sans-serif;font-weight:600;text-anchor:middle", cssRGBA(textAccent)))
	}
	canvas.Gend()

	canvas.Gid("links")
	for _, l := range f.Lines {
		c, marker := edgeNormal, "arrow"
		if l.TouchesSelectedNode {
			c, marker = edgeActive, "arrow-active"
		}
		x1, y1 := s.x(l.WorldA.X), s.y(l.WorldA.Y)
		x2, y2 := s.x(l.WorldB.X), s.y(l.WorldB.Y)
		// end at the card edge so the marker stays visible
		angle := math.Atan2(y2-y1, x2-x1)
		ex := x2 - present.CardHeight/2*math.Cos(angle)
		ey := y2 - present.CardHeight/2*math.Sin(angle)
		canvas.Line(px(x1), px(y1), px(ex), px(ey),
			fmt.Sprintf("stroke:%s;stroke-width:2", cssRGBA(c)),
			fmt.Sprintf(`marker-end="url(#%s)"`, marker))
		if l.Label != "" {
			canvas.Text(px((x1+x2)/2), px((y1+y2)/2-8), truncate(l.Label, 28),
				fmt.Sprintf("fill:%s;font-size:11px;font-family:system-ui,sans-serif;text-anchor:middle", cssRGBA(textSecondary)))
		}
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range f.Nodes {
		x, y := px(s.x(n.World.X)), px(s.y(n.World.Y))
		stroke, sw := cardStroke, 1.5
		if n.Highlighted {
			stroke, sw = cardActive, 3
		}
		canvas.Group(fmt.Sprintf(`data-node-id="%s"`, esc(n.ID)))
		canvas.Roundrect(x, y, int(present.CardWidth), int(present.CardHeight), 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.1f;filter:url(#shadow)", cssRGBA(bgCard), cssRGBA(stroke), sw))
		canvas.Text(x+12, y+22, truncate(n.Title, 26),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:system-ui,sans-serif;font-weight:600", cssRGBA(textPrimary)))
		if n.Summary != "" {
			canvas.Text(x+12, y+40, truncate(n.Summary, 30),
				fmt.Sprintf("fill:%s;font-size:11px;font-family:system-ui,sans-serif", cssRGBA(textSecondary)))
		}
		if n.Badge != "" {
			canvas.Text(x+int(present.CardWidth)-10, y+int(present.CardHeight)-8, n.Badge,
				fmt.Sprintf("fill:%s;font-size:10px;font-family:system-ui,sans-serif;text-anchor:end", cssRGBA(textAccent)))
		}
		canvas.Gend()
	}
	canvas.Gend()

	if title == "" {
		title = "Bubble Map"
	}
	canvas.Roundrect(20, 12, width-40, 50, 10, 10, "fill:"+cssRGBA(bgHeader))
	canvas.Text(36, 34, truncate(title, 60),
		fmt.Sprintf("fill:%s;font-size:16px;font-family:system-ui,sans-serif;font-weight:600", cssRGBA(textPrimary)))
	canvas.Text(36, 52, fmt.Sprintf("%d bubbles · %d nodes · %d links", len(f.Bubbles), len(f.Nodes), len(f.Lines)),
		fmt.Sprintf("fill:%s;font-size:11px;font-family:system-ui,sans-serif", cssRGBA(textSecondary)))

	canvas.End()
	return nil
}

func px(v float64) int { return int(math.Round(v)) }

// esc escapes attribute values; svgo escapes text content itself.
func esc(s string) string { return html.EscapeString(s) }

func cssRGBA(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
