// path.go — Path construction, flattening and rasterisation.
package canvas

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

type segKind int

const (
	segMove segKind = iota
	segLine
	segQuad
	segCube
	segClose
)

type segment struct {
	kind segKind
	pts  [3]point
}

type point struct{ X, Y float64 }

// Path is a sequence of sub-paths in canvas pixel coordinates.
type Path struct {
	segs   []segment
	cur    point
	start  point
	hasCur bool
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.segs = append(p.segs, segment{kind: segMove, pts: [3]point{{x, y}}})
	p.cur, p.start, p.hasCur = point{x, y}, point{x, y}, true
	return p
}

// LineTo adds a straight segment.
func (p *Path) LineTo(x, y float64) *Path {
	if !p.hasCur {
		return p.MoveTo(x, y)
	}
	p.segs = append(p.segs, segment{kind: segLine, pts: [3]point{{x, y}}})
	p.cur = point{x, y}
	return p
}

// QuadTo adds a quadratic Bézier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	if !p.hasCur {
		p.MoveTo(cx, cy)
	}
	p.segs = append(p.segs, segment{kind: segQuad, pts: [3]point{{cx, cy}, {x, y}}})
	p.cur = point{x, y}
	return p
}

// CubeTo adds a cubic Bézier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	if !p.hasCur {
		p.MoveTo(c1x, c1y)
	}
	p.segs = append(p.segs, segment{kind: segCube, pts: [3]point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.cur = point{x, y}
	return p
}

// Close closes the current sub-path.
func (p *Path) Close() *Path {
	if p.hasCur {
		p.segs = append(p.segs, segment{kind: segClose})
		p.cur = p.start
	}
	return p
}

// Arc adds a circular arc around (cx, cy) from angle a0 to a1 (radians,
// clockwise on screen). It connects to the current point with a line.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) *Path {
	sweep := a1 - a0
	n := int(math.Ceil(math.Abs(sweep) * math.Max(r, 4) / 4))
	n = max(n, 8)
	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 && !p.hasCur {
			p.MoveTo(x, y)
			continue
		}
		p.LineTo(x, y)
	}
	return p
}

// Circle adds a closed circle sub-path.
func (p *Path) Circle(cx, cy, r float64) *Path {
	p.MoveTo(cx+r, cy)
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	return p.Close()
}

// Rect adds a closed rectangle sub-path.
func (p *Path) Rect(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Polygon adds a closed polygon through pts, given as x0, y0, x1, y1, ...
func (p *Path) Polygon(pts ...float64) *Path {
	for i := 0; i+1 < len(pts); i += 2 {
		if i == 0 {
			p.MoveTo(pts[0], pts[1])
			continue
		}
		p.LineTo(pts[i], pts[i+1])
	}
	return p.Close()
}

// Empty reports whether the path has no drawable segments.
func (p *Path) Empty() bool { return len(p.segs) == 0 }

// rasterize fills the path into a coverage mask the size of the canvas.
func (p *Path) rasterize(w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if p.Empty() {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			z.MoveTo(f32(s.pts[0].X), f32(s.pts[0].Y))
		case segLine:
			z.LineTo(f32(s.pts[0].X), f32(s.pts[0].Y))
		case segQuad:
			z.QuadTo(f32(s.pts[0].X), f32(s.pts[0].Y), f32(s.pts[1].X), f32(s.pts[1].Y))
		case segCube:
			z.CubeTo(f32(s.pts[0].X), f32(s.pts[0].Y), f32(s.pts[1].X), f32(s.pts[1].Y), f32(s.pts[2].X), f32(s.pts[2].Y))
		case segClose:
			z.ClosePath()
		}
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// flatten converts the path to polylines; closed reports whether each
// polyline was explicitly closed.
func (p *Path) flatten() (lines [][]point, closed []bool) {
	var cur []point
	flush := func(isClosed bool) {
		if len(cur) > 1 {
			lines = append(lines, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	var pen point
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			flush(false)
			pen = s.pts[0]
			cur = []point{pen}
		case segLine:
			pen = s.pts[0]
			cur = append(cur, pen)
		case segQuad:
			for i := 1; i <= 16; i++ {
				t := float64(i) / 16
				mt := 1 - t
				cur = append(cur, point{
					mt*mt*pen.X + 2*mt*t*s.pts[0].X + t*t*s.pts[1].X,
					mt*mt*pen.Y + 2*mt*t*s.pts[0].Y + t*t*s.pts[1].Y,
				})
			}
			pen = s.pts[1]
		case segCube:
			for i := 1; i <= 24; i++ {
				t := float64(i) / 24
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur = append(cur, point{
					a*pen.X + b*s.pts[0].X + c*s.pts[1].X + d*s.pts[2].X,
					a*pen.Y + b*s.pts[0].Y + c*s.pts[1].Y + d*s.pts[2].Y,
				})
			}
			pen = s.pts[2]
		case segClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
				pen = cur[0]
			}
			flush(true)
			cur = []point{pen}
		}
	}
	flush(false)
	return lines, closed
}

// strokeOutline builds a fillable path covering the stroke of p at width lw,
// using round joins and caps.
func (p *Path) strokeOutline(lw float64) *Path {
	out := NewPath()
	hw := lw / 2
	lines, _ := p.flatten()
	for _, pl := range lines {
		for i := 1; i < len(pl); i++ {
			a, b := pl[i-1], pl[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*hw, dx/l*hw
			// All quads share one winding so overlaps add instead of cancel.
			out.Polygon(a.X-nx, a.Y-ny, b.X-nx, b.Y-ny, b.X+nx, b.Y+ny, a.X+nx, a.Y+ny)
		}
		if hw >= 0.75 {
			for _, v := range pl {
				out.Circle(v.X, v.Y, hw)
			}
		}
	}
	return out
}

func f32(v float64) float32 { return float32(v) }
