package bough

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill when a datum names none.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor reads a hex colour such as "#f80" or "#ff8800".
func ParseColor(s string) (Color, bool) {
	c, err := colorful.Hex(normalizeHex(s))
	if err != nil {
		return Color{}, false
	}
	return Color{c.R, c.G, c.B, 1}, true
}

// WithAlpha returns c with its alpha multiplied by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = math.Max(0, math.Min(1, c.A*a))
	return c
}

// RGBA converts c to a premultiplied 8-bit colour.
func (c Color) RGBA() color.RGBA {
	a := math.Max(0, math.Min(1, c.A))
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * a * 255))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), uint8(math.Round(a * 255))}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset shrinks the rectangle by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{r.X + m, r.Y + m, math.Max(0, r.Width-2*m), math.Max(0, r.Height-2*m)}
}

// Domain is the closed value range [Min, Max] of one chart axis.
type Domain struct {
	Min, Max float64
}

// DefaultDomain is used when nothing in a tree reports a domain.
var DefaultDomain = Domain{0, 1}

// Span returns Max − Min.
func (d Domain) Span() float64 {
	return d.Max - d.Min
}

// Union returns the smallest domain containing both d and o.
func (d Domain) Union(o Domain) Domain {
	return Domain{math.Min(d.Min, o.Min), math.Max(d.Max, o.Max)}
}

// Normalize maps v into [0, 1] relative to the domain. A zero-width domain
// maps everything to 0.5.
func (d Domain) Normalize(v float64) float64 {
	span := d.Span()
	if span == 0 {
		return 0.5
	}
	return (v - d.Min) / span
}

// list renders the domain as an interpolatable [min, max] pair.
func (d Domain) list() []any {
	return []any{d.Min, d.Max}
}

// domainFromValue reads a [min, max] pair back out of an animated prop bag.
func domainFromValue(v any) (Domain, bool) {
	l, ok := toList(v)
	if !ok || len(l) != 2 {
		return Domain{}, false
	}
	lo, okLo := toNumber(l[0])
	hi, okHi := toNumber(l[1])
	if !okLo || !okHi {
		return Domain{}, false
	}
	return Domain{lo, hi}, true
}
