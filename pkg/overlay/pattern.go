package overlay

import (
	"math"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// PatternKind selects the tiling of a pattern overlay.
type PatternKind string

const (
	Dots     PatternKind = "dots"
	Lines    PatternKind = "lines"
	Grid     PatternKind = "grid"
	Diagonal PatternKind = "diagonal"
)

// NewPattern returns a full-canvas texture tiled every spacing pixels. It
// multiplies onto what is below unless BlendMode is changed.
func NewPattern(id string, pattern PatternKind, spacing float64, color string, opacity float64) *Overlay {
	if spacing < 2 {
		spacing = 2
	}
	return &Overlay{
		ID:        id,
		Kind:      KindPattern,
		Variant:   string(pattern),
		Position:  Position{X: Px(0), Y: Px(0)},
		Size:      Size{Width: Pct(100), Height: Pct(100)},
		Color:     color,
		Opacity:   opacity,
		Enabled:   true,
		BlendMode: canvas.Multiply,
		Render: func(c *canvas.Context, o *Overlay) {
			renderPattern(c, o, spacing)
		},
	}
}

func renderPattern(c *canvas.Context, o *Overlay, spacing float64) {
	x0, y0, w, h := o.Bounds(c)
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x0+w, y0+h

	c.Scoped(func() {
		o.begin(c)
		paint := canvas.SolidColor(o.Color)
		c.FillStyle = paint
		c.StrokeStyle = paint
		c.LineWidth = 1

		p := canvas.NewPath()
		switch PatternKind(o.Variant) {
		case Dots:
			r := math.Max(1, spacing/10)
			for y := y0 + spacing/2; y < y1; y += spacing {
				for x := x0 + spacing/2; x < x1; x += spacing {
					p.Circle(x, y, r)
				}
			}
			c.Fill(p)
		case Lines:
			for y := y0; y < y1; y += spacing {
				p.Rect(x0, y, w, 1)
			}
			c.Fill(p)
		case Grid:
			for y := y0; y < y1; y += spacing {
				p.Rect(x0, y, w, 1)
			}
			for x := x0; x < x1; x += spacing {
				p.Rect(x, y0, 1, h)
			}
			c.Fill(p)
		case Diagonal:
			for x := x0; x < x1+h; x += spacing {
				p.MoveTo(x, y0).LineTo(x-h, y1)
			}
			c.Stroke(p)
		}
	})
}
