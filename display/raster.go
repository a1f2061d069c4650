package display

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/phanxgames/bough"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// plotMargin is the gap between the canvas edge and the plot area, in pixels.
const plotMargin = 16

// Stock leaf props read when drawing.
const (
	PropColor       = "color"
	PropStrokeWidth = "strokeWidth"
)

// palette colours leaves that carry no "color" prop, by leaf index.
var palette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948"}

// point is the drawable part of a datum.
type point struct {
	X       float64
	Y       float64
	Opacity *float64
	Size    float64
	Color   string
}

// Canvas rasterizes frames into an RGBA image. A Canvas reuses its scanner
// between draws; it is not safe for concurrent use.
type Canvas struct {
	img        *image.RGBA
	scanner    *rasterx.ScannerGV
	filler     *rasterx.Filler
	stroker    *rasterx.Stroker
	background color.Color
}

// NewCanvas allocates a canvas of w×h pixels.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Canvas{
		img:        img,
		scanner:    scanner,
		filler:     rasterx.NewFiller(w, h, scanner),
		stroker:    rasterx.NewStroker(w, h, scanner),
		background: color.RGBA{0x1e, 0x1e, 0x24, 0xff},
	}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Rasterize draws frames on a fresh w×h image.
func Rasterize(frames []bough.Frame, w, h int) *image.RGBA {
	c := NewCanvas(w, h)
	c.Draw(frames)
	return c.img
}

// Draw clears the canvas and paints every frame in order.
func (c *Canvas) Draw(frames []bough.Frame) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	b := c.img.Bounds()
	area := bough.Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}.Inset(plotMargin)
	for _, f := range frames {
		c.drawFrame(f, area)
	}
}

func (c *Canvas) drawFrame(f bough.Frame, area bough.Rect) {
	if f.Leaf == nil {
		return
	}
	pts := decodePoints(f.Data())
	if len(pts) == 0 {
		return
	}
	s := scales{area: area, x: f.Domain(bough.AxisX), y: f.Domain(bough.AxisY)}
	fill := leafColor(f)

	switch f.Leaf.Kind() {
	case bough.KindBar:
		c.drawBars(pts, s, fill)
	case bough.KindLine:
		c.drawLine(f, pts, s, fill)
	default:
		c.drawPoints(pts, s, fill)
	}
}

func (c *Canvas) drawBars(pts []point, s scales, fill bough.Color) {
	w := s.area.Width / float64(len(pts)) * 0.8
	base := s.py(math.Max(s.y.Min, math.Min(s.y.Max, 0)))
	for _, p := range pts {
		x := s.px(p.X)
		y := s.py(p.Y)
		top, bottom := math.Min(y, base), math.Max(y, base)
		if bottom-top < 0.5 {
			continue
		}
		c.filler.SetColor(pointColor(p, fill).RGBA())
		rasterx.AddRect(x-w/2, top, x+w/2, bottom, 0, c.filler)
		c.filler.Draw()
		c.filler.Clear()
	}
}

func (c *Canvas) drawPoints(pts []point, s scales, fill bough.Color) {
	for _, p := range pts {
		r := p.Size
		if r <= 0 {
			r = 4
		}
		col := pointColor(p, fill)
		if col.A <= 0 {
			continue
		}
		c.filler.SetColor(col.RGBA())
		rasterx.AddCircle(s.px(p.X), s.py(p.Y), r, c.filler)
		c.filler.Draw()
		c.filler.Clear()
	}
}

// drawLine strokes the polyline inside the frame's clip rectangle. The clip
// is measured in leaf width units and mapped onto the plot area.
func (c *Canvas) drawLine(f bough.Frame, pts []point, s scales, fill bough.Color) {
	if len(pts) < 2 {
		return
	}
	extent := f.Leaf.ClipExtent()
	if w, ok := f.ClipWidth(); ok {
		x0 := s.area.X + f.TranslateX()/extent*s.area.Width
		x1 := x0 + w/extent*s.area.Width
		if x1-x0 < 0.5 {
			return
		}
		c.scanner.SetClip(image.Rect(int(math.Floor(x0)), 0, int(math.Ceil(x1)), c.img.Bounds().Dy()))
		defer c.scanner.SetClip(image.Rectangle{})
	}

	width := 2.0
	if v, ok := f.Props[PropStrokeWidth].(float64); ok && v > 0 {
		width = v
	}
	c.stroker.SetStroke(fixed.Int26_6(width*64), 4*64, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.ArcClip)
	c.stroker.SetColor(fill.RGBA())
	c.stroker.Start(rasterx.ToFixedP(s.px(pts[0].X), s.py(pts[0].Y)))
	for _, p := range pts[1:] {
		c.stroker.Line(rasterx.ToFixedP(s.px(p.X), s.py(p.Y)))
	}
	c.stroker.Stop(false)
	c.stroker.Draw()
	c.stroker.Clear()
}

// scales maps data values onto the plot area.
type scales struct {
	area bough.Rect
	x, y bough.Domain
}

func (s scales) px(v float64) float64 {
	return s.area.X + s.x.Normalize(v)*s.area.Width
}

func (s scales) py(v float64) float64 {
	return s.area.Y + s.area.Height - s.y.Normalize(v)*s.area.Height
}

func decodePoints(data []bough.Datum) []point {
	out := make([]point, 0, len(data))
	for _, d := range data {
		var p point
		if err := bough.DecodeValue(d, &p); err != nil {
			continue
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func leafColor(f bough.Frame) bough.Color {
	if s, ok := f.Props[PropColor].(string); ok {
		if c, ok := bough.ParseColor(s); ok {
			return c
		}
	}
	c, _ := bough.ParseColor(palette[f.Index%len(palette)])
	return c
}

func pointColor(p point, fill bough.Color) bough.Color {
	if p.Color != "" {
		if c, ok := bough.ParseColor(p.Color); ok {
			fill = c
		}
	}
	if p.Opacity != nil {
		fill = fill.WithAlpha(*p.Opacity)
	}
	return fill
}
