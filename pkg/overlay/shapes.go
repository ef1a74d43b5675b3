package overlay

import (
	"math"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// ShapeKind selects the geometry of a shape overlay.
type ShapeKind string

const (
	Circle    ShapeKind = "circle"
	Rectangle ShapeKind = "rectangle"
	Triangle  ShapeKind = "triangle"
	Hexagon   ShapeKind = "hexagon"
)

// NewShape returns a filled shape centred in its resolved rectangle, drawn
// with normal blending.
func NewShape(id string, shape ShapeKind, pos Position, size Size, color string, opacity float64) *Overlay {
	return &Overlay{
		ID:       id,
		Kind:     KindShape,
		Variant:  string(shape),
		Position: pos,
		Size:     size,
		Color:    color,
		Opacity:  opacity,
		Enabled:  true,
		Render:   renderShape,
	}
}

func renderShape(c *canvas.Context, o *Overlay) {
	x, y, w, h := o.Bounds(c)
	if w <= 0 || h <= 0 {
		return
	}
	c.Scoped(func() {
		o.begin(c)
		c.FillStyle = canvas.SolidColor(o.Color)
		c.Fill(shapePath(ShapeKind(o.Variant), x, y, w, h))
	})
}

func shapePath(shape ShapeKind, x, y, w, h float64) *canvas.Path {
	cx, cy := x+w/2, y+h/2
	r := math.Min(w, h) / 2
	p := canvas.NewPath()
	switch shape {
	case Circle:
		p.Circle(cx, cy, r)
	case Triangle:
		p.Polygon(cx, y, x+w, y+h, x, y+h)
	case Hexagon:
		pts := make([]float64, 0, 12)
		for i := 0; i < 6; i++ {
			a := math.Pi/3*float64(i) - math.Pi/2
			pts = append(pts, cx+r*math.Cos(a), cy+r*math.Sin(a))
		}
		p.Polygon(pts...)
	default:
		p.Rect(x, y, w, h)
	}
	return p
}

// NewSymbol returns an emblem overlay. render draws the bespoke artwork; when
// nil a ringed circle placeholder is drawn instead.
func NewSymbol(id string, pos Position, size Size, color string, opacity float64, render RenderFunc) *Overlay {
	o := &Overlay{
		ID:       id,
		Kind:     KindSymbol,
		Position: pos,
		Size:     size,
		Color:    color,
		Opacity:  opacity,
		Enabled:  true,
		Render:   render,
	}
	if render == nil {
		o.Variant = "ring"
		o.Render = renderRing
	} else {
		o.Variant = "custom"
	}
	return o
}

// Scoped wraps a custom symbol body so it runs with the overlay's alpha and
// blend mode applied and leaves the context at defaults afterwards.
func Scoped(body func(c *canvas.Context, x, y, w, h float64, o *Overlay)) RenderFunc {
	return func(c *canvas.Context, o *Overlay) {
		x, y, w, h := o.Bounds(c)
		c.Scoped(func() {
			o.begin(c)
			body(c, x, y, w, h, o)
		})
	}
}

func renderRing(c *canvas.Context, o *Overlay) {
	x, y, w, h := o.Bounds(c)
	r := math.Min(w, h) / 2
	if r <= 0 {
		return
	}
	cx, cy := x+w/2, y+h/2
	c.Scoped(func() {
		o.begin(c)
		c.StrokeStyle = canvas.SolidColor(o.Color)
		c.LineWidth = math.Max(2, r*0.1)
		c.Stroke(canvas.NewPath().Circle(cx, cy, r*0.85))
		c.FillStyle = canvas.SolidColor(o.Color)
		c.Fill(canvas.NewPath().Circle(cx, cy, r*0.4))
	})
}
