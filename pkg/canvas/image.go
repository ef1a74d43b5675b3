package canvas

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// DrawImage draws img scaled into the rectangle (x, y, w, h). Zero w or h
// uses the image's natural size.
func (c *Context) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	sb := img.Bounds()
	if w <= 0 || h <= 0 {
		w, h = float64(sb.Dx()), float64(sb.Dy())
	}
	dw, dh := int(math.Round(w)), int(math.Round(h))
	if dw <= 0 || dh <= 0 {
		return
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	if dw == sb.Dx() && dh == sb.Dy() {
		xdraw.Copy(scaled, image.Point{}, img, sb, xdraw.Src, nil)
	} else {
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, sb, xdraw.Src, nil)
	}
	origin := image.Pt(int(math.Round(x)), int(math.Round(y)))
	c.composite(imageSource{img: scaled, origin: origin})
}
