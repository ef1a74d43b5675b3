// composite.go — Blend coverage masks and images onto the surface, honouring
// globalAlpha, the composite operation and the drop shadow.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// source is something to composite: straight (non-premultiplied) colour in
// 0–1 with coverage already folded into alpha.
type source interface {
	bounds() image.Rectangle
	at(x, y int) (r, g, b, a float64)
}

type maskSource struct {
	mask  *image.Alpha
	paint Paint
	rect  *image.Rectangle
}

func (m maskSource) bounds() image.Rectangle {
	if m.rect != nil {
		return *m.rect
	}
	return opaqueBounds(m.mask)
}

func (m maskSource) at(x, y int) (float64, float64, float64, float64) {
	cov := m.mask.AlphaAt(x, y).A
	if cov == 0 {
		return 0, 0, 0, 0
	}
	col := m.paint.ColorAt(float64(x)+0.5, float64(y)+0.5)
	return float64(col.R) / 255, float64(col.G) / 255, float64(col.B) / 255,
		float64(col.A) / 255 * float64(cov) / 255
}

type imageSource struct {
	img    *image.NRGBA
	origin image.Point
}

func (s imageSource) bounds() image.Rectangle {
	return s.img.Bounds().Sub(s.img.Bounds().Min).Add(s.origin)
}

func (s imageSource) at(x, y int) (float64, float64, float64, float64) {
	b := s.img.Bounds()
	p := s.img.NRGBAAt(b.Min.X+x-s.origin.X, b.Min.Y+y-s.origin.Y)
	return float64(p.R) / 255, float64(p.G) / 255, float64(p.B) / 255, float64(p.A) / 255
}

// opaqueBounds returns the smallest rectangle holding every non-zero pixel.
func opaqueBounds(m *image.Alpha) image.Rectangle {
	b := m.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if row[x] == 0 {
				continue
			}
			minX = min(minX, b.Min.X+x)
			maxX = max(maxX, b.Min.X+x+1)
			minY = min(minY, y)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func (c *Context) shadowActive() bool {
	return c.ShadowColor.A > 0 && (c.ShadowBlur > 0 || c.ShadowOffsetX != 0 || c.ShadowOffsetY != 0)
}

func (c *Context) composite(src source) {
	b := src.bounds()
	if b.Empty() || c.GlobalAlpha <= 0 {
		return
	}
	if c.shadowActive() {
		c.drawShadow(src, b)
	}

	clip := b.Intersect(c.img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			r, g, bl, a := src.at(x, y)
			a *= c.GlobalAlpha
			if a <= 0 {
				continue
			}
			c.blend(x, y, r, g, bl, a)
		}
	}
}

// drawShadow paints the blurred, offset silhouette of src. Blur follows the
// canvas convention of sigma = shadowBlur / 2.
func (c *Context) drawShadow(src source, b image.Rectangle) {
	pad := int(math.Ceil(c.ShadowBlur*1.5)) + 1
	area := b.Inset(-pad)

	sil := image.NewNRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.at(x, y)
			if a <= 0 {
				continue
			}
			sil.SetNRGBA(x-area.Min.X, y-area.Min.Y, color.NRGBA{255, 255, 255, clampByte(a * 255)})
		}
	}

	blurred := sil
	if c.ShadowBlur > 0 {
		blurred = imaging.Blur(sil, c.ShadowBlur/2)
	}

	ox := int(math.Round(c.ShadowOffsetX))
	oy := int(math.Round(c.ShadowOffsetY))
	sr := float64(c.ShadowColor.R) / 255
	sg := float64(c.ShadowColor.G) / 255
	sb := float64(c.ShadowColor.B) / 255
	sa := float64(c.ShadowColor.A) / 255 * c.GlobalAlpha

	surface := c.img.Bounds()
	bb := blurred.Bounds()
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			cx := area.Min.X + x - bb.Min.X + ox
			cy := area.Min.Y + y - bb.Min.Y + oy
			if !(image.Point{cx, cy}).In(surface) {
				continue
			}
			a := float64(blurred.NRGBAAt(x, y).A) / 255 * sa
			if a <= 0 {
				continue
			}
			c.blend(cx, cy, sr, sg, sb, a)
		}
	}
}

// blend composites one straight-colour source pixel with alpha a onto the
// premultiplied destination pixel at (x, y).
func (c *Context) blend(x, y int, sr, sg, sb, a float64) {
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	dr, dg, db, da := float64(p[0])/255, float64(p[1])/255, float64(p[2])/255, float64(p[3])/255

	var or, og, ob, oa float64
	switch c.GlobalCompositeOperation {
	case DestinationOver:
		k := a * (1 - da)
		or, og, ob = dr+sr*k, dg+sg*k, db+sb*k
		oa = da + k
	case Multiply, Screen:
		mix := func(cs, cbPremul float64) float64 {
			cb := 0.0
			if da > 0 {
				cb = cbPremul / da
			}
			var bl float64
			if c.GlobalCompositeOperation == Multiply {
				bl = cs * cb
			} else {
				bl = cs + cb - cs*cb
			}
			return (1-da)*cs + da*bl
		}
		r, g, b := mix(sr, dr), mix(sg, dg), mix(sb, db)
		or, og, ob = r*a+dr*(1-a), g*a+dg*(1-a), b*a+db*(1-a)
		oa = a + da*(1-a)
	default:
		or, og, ob = sr*a+dr*(1-a), sg*a+dg*(1-a), sb*a+db*(1-a)
		oa = a + da*(1-a)
	}

	p[0] = clampByte(or * 255)
	p[1] = clampByte(og * 255)
	p[2] = clampByte(ob * 255)
	p[3] = clampByte(oa * 255)
}
