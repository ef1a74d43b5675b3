package overlay

import (
	"math"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// Corner names a canvas corner.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// DecorationStyle selects a corner ornament.
type DecorationStyle string

const (
	Flourish  DecorationStyle = "flourish"
	Geometric DecorationStyle = "geometric"
	Organic   DecorationStyle = "organic"
)

const (
	cornerInset = 20
	cornerSize  = 60
)

// NewCornerDecoration returns an ornament inset 20px from corner.
func NewCornerDecoration(id string, corner Corner, style DecorationStyle, color string, opacity float64) *Overlay {
	pos := Position{X: Px(cornerInset), Y: Px(cornerInset)}
	if corner == TopRight || corner == BottomRight {
		pos.X = Inset(cornerInset, cornerSize)
	}
	if corner == BottomLeft || corner == BottomRight {
		pos.Y = Inset(cornerInset, cornerSize)
	}
	return &Overlay{
		ID:       id,
		Kind:     KindDecoration,
		Variant:  string(style),
		Position: pos,
		Size:     Size{Width: Px(cornerSize), Height: Px(cornerSize)},
		Color:    color,
		Opacity:  opacity,
		Enabled:  true,
		Render: func(c *canvas.Context, o *Overlay) {
			renderCorner(c, o, corner)
		},
	}
}

func renderCorner(c *canvas.Context, o *Overlay, corner Corner) {
	x, y, w, h := o.Bounds(c)
	if w <= 0 || h <= 0 {
		return
	}
	// Ornaments are authored for the top-left corner in unit space and
	// mirrored so the heavy end always sits in the canvas corner.
	flipX := corner == TopRight || corner == BottomRight
	flipY := corner == BottomLeft || corner == BottomRight
	px := func(u float64) float64 {
		if flipX {
			return x + w - u*w
		}
		return x + u*w
	}
	py := func(v float64) float64 {
		if flipY {
			return y + h - v*h
		}
		return y + v*h
	}

	c.Scoped(func() {
		o.begin(c)
		paint := canvas.SolidColor(o.Color)
		c.StrokeStyle = paint
		c.FillStyle = paint
		c.LineWidth = math.Max(1.5, w/30)

		p := canvas.NewPath()
		switch DecorationStyle(o.Variant) {
		case Geometric:
			p.MoveTo(px(0), py(1)).LineTo(px(0), py(0)).LineTo(px(1), py(0))
			p.MoveTo(px(0.2), py(0.7)).LineTo(px(0.2), py(0.2)).LineTo(px(0.7), py(0.2))
			c.Stroke(p)
			c.Fill(canvas.NewPath().Polygon(
				px(0.45), py(0.35), px(0.55), py(0.45), px(0.45), py(0.55), px(0.35), py(0.45)))
		case Organic:
			p.MoveTo(px(0), py(1)).
				CubeTo(px(0.1), py(0.6), px(0.4), py(0.7), px(0.3), py(0.3)).
				CubeTo(px(0.2), py(0.05), px(0.6), py(0.3), px(1), py(0))
			p.MoveTo(px(0.3), py(0.3)).QuadTo(px(0.55), py(0.55), px(0.45), py(0.75))
			c.Stroke(p)
		default:
			p.MoveTo(px(0), py(1)).QuadTo(px(0), py(0), px(1), py(0))
			p.MoveTo(px(0.15), py(0.75)).QuadTo(px(0.35), py(0.35), px(0.75), py(0.15))
			c.Stroke(p)
			c.Fill(canvas.NewPath().Circle(px(0.18), py(0.18), math.Max(2, w/20)))
		}
	})
}
