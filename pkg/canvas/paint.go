package canvas

import (
	"image/color"
	"sort"
)

// Paint supplies the fill or stroke colour at a canvas position.
type Paint interface {
	ColorAt(x, y float64) color.NRGBA
}

// Solid is a single-colour paint.
type Solid color.NRGBA

// ColorAt implements Paint.
func (s Solid) ColorAt(_, _ float64) color.NRGBA { return color.NRGBA(s) }

// SolidColor parses a CSS colour into a Solid paint, white on error.
func SolidColor(css string) Solid { return Solid(MustColor(css)) }

// ColorStop is one stop of a gradient, Offset in 0–1.
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient interpolates colour stops along the line (X0,Y0)–(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// NewLinearGradient returns a gradient with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a stop; stops are kept sorted by offset.
func (g *LinearGradient) AddColorStop(offset float64, c color.NRGBA) {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Offset < g.Stops[j].Offset })
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(x, y float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	den := dx*dx + dy*dy
	t := 0.0
	if den > 0 {
		t = ((x-g.X0)*dx + (y-g.Y0)*dy) / den
	}

	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(p, q uint8) uint8 { return clampByte(float64(p) + (float64(q)-float64(p))*t) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
