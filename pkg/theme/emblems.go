package theme

import (
	"math"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/overlay"
)

// Bespoke symbol artwork. Each is drawn in unit space scaled to the overlay
// box.

var eagleEmblem = overlay.Scoped(func(c *canvas.Context, x, y, w, h float64, o *overlay.Overlay) {
	pt := func(u, v float64) (float64, float64) { return x + u*w, y + v*h }
	poly := func(uv ...float64) *canvas.Path {
		pts := make([]float64, len(uv))
		for i := 0; i < len(uv); i += 2 {
			pts[i], pts[i+1] = pt(uv[i], uv[i+1])
		}
		return canvas.NewPath().Polygon(pts...)
	}

	c.SetFillColor(o.Color)
	// Wings, feathered in three steps each side.
	c.Fill(poly(0.5, 0.35, 0.0, 0.15, 0.08, 0.35, 0.02, 0.40, 0.12, 0.55, 0.06, 0.60, 0.45, 0.62))
	c.Fill(poly(0.5, 0.35, 1.0, 0.15, 0.92, 0.35, 0.98, 0.40, 0.88, 0.55, 0.94, 0.60, 0.55, 0.62))
	// Body and tail.
	c.Fill(poly(0.42, 0.30, 0.58, 0.30, 0.60, 0.70, 0.5, 0.95, 0.40, 0.70))
	hx, hy := pt(0.5, 0.22)
	c.Fill(canvas.NewPath().Circle(hx, hy, 0.09*math.Min(w, h)))
})

var skullEmblem = overlay.Scoped(func(c *canvas.Context, x, y, w, h float64, o *overlay.Overlay) {
	s := math.Min(w, h)
	cx, cy := x+w/2, y+h/2

	c.SetFillColor(o.Color)
	c.Fill(canvas.NewPath().Circle(cx, cy-0.08*s, 0.36*s))
	c.FillRect(cx-0.2*s, cy+0.15*s, 0.4*s, 0.25*s)

	c.SetFillColor("rgba(0, 0, 0, 0.85)")
	c.Fill(canvas.NewPath().Circle(cx-0.14*s, cy-0.05*s, 0.09*s))
	c.Fill(canvas.NewPath().Circle(cx+0.14*s, cy-0.05*s, 0.09*s))
	c.Fill(canvas.NewPath().Polygon(cx, cy+0.05*s, cx-0.05*s, cy+0.14*s, cx+0.05*s, cy+0.14*s))
})

var runeEmblem = overlay.Scoped(func(c *canvas.Context, x, y, w, h float64, o *overlay.Overlay) {
	s := math.Min(w, h)
	cx, cy := x+w/2, y+h/2

	c.SetStrokeColor(o.Color)
	c.LineWidth = math.Max(1, s*0.05)
	c.Stroke(canvas.NewPath().Circle(cx, cy, 0.45*s))
	star := canvas.NewPath()
	for i := 0; i < 5; i++ {
		a := -math.Pi/2 + float64(i*2)*2*math.Pi/5
		px, py := cx+0.38*s*math.Cos(a), cy+0.38*s*math.Sin(a)
		if i == 0 {
			star.MoveTo(px, py)
		} else {
			star.LineTo(px, py)
		}
	}
	c.Stroke(star.Close())
})
