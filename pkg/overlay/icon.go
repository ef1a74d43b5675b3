// icon.go — Emblem and share-badge overlays built from IconVG icons and QR codes.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/skip2/go-qrcode"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// Emblems are the bundled IconVG symbols themes can use by name.
var Emblems = map[string][]byte{
	"star":   icons.ActionGrade,
	"flame":  icons.SocialWhatsHot,
	"shield": icons.ActionVerifiedUser,
	"stars":  icons.ActionStars,
}

// NewIconSymbol returns a symbol overlay that draws the named emblem tinted
// with fill. An unknown emblem draws nothing.
func NewIconSymbol(id, emblem string, pos Position, size Size, fill string, opacity float64) *Overlay {
	o := NewSymbol(id, pos, size, fill, opacity, nil)
	o.Variant = emblem
	o.Render = renderIcon
	return o
}

func renderIcon(c *canvas.Context, o *Overlay) {
	data, ok := Emblems[o.Variant]
	if !ok {
		log.Printf("warning: overlay %q: unknown emblem %q", o.ID, o.Variant)
		return
	}
	x, y, w, h := o.Bounds(c)
	side := int(math.Round(math.Min(w, h)))
	if side <= 0 {
		return
	}
	img, err := RasterizeIcon(data, side, canvas.MustColor(o.Color))
	if err != nil {
		log.Printf("warning: overlay %q: %v", o.ID, err)
		return
	}
	c.Scoped(func() {
		o.begin(c)
		c.DrawImage(img, x+(w-float64(side))/2, y+(h-float64(side))/2, 0, 0)
	})
}

// RasterizeIcon renders IconVG data into a side×side image, using the icon's
// coverage as alpha for the solid colour tint.
func RasterizeIcon(data []byte, side int, tint color.NRGBA) (*image.NRGBA, error) {
	mask := image.NewRGBA(image.Rect(0, 0, side, side))
	var z iconvg.Rasterizer
	z.SetDstImage(mask, mask.Bounds(), draw.Src)
	if err := iconvg.Decode(&z, data, nil); err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}

	out := image.NewNRGBA(mask.Bounds())
	for i := 0; i < len(mask.Pix); i += 4 {
		a := mask.Pix[i+3]
		if a == 0 {
			continue
		}
		out.Pix[i] = tint.R
		out.Pix[i+1] = tint.G
		out.Pix[i+2] = tint.B
		out.Pix[i+3] = uint8(uint16(a) * uint16(tint.A) / 255)
	}
	return out, nil
}

// NewQRCode returns an overlay drawing a QR code for content, with dark
// modules in fill on a transparent background.
func NewQRCode(id, content string, pos Position, size Size, fill string, opacity float64) *Overlay {
	return &Overlay{
		ID:       id,
		Kind:     KindSymbol,
		Variant:  "qr",
		Position: pos,
		Size:     size,
		Color:    fill,
		Opacity:  opacity,
		Enabled:  true,
		Render: func(c *canvas.Context, o *Overlay) {
			renderQR(c, o, content)
		},
	}
}

func renderQR(c *canvas.Context, o *Overlay, content string) {
	x, y, w, h := o.Bounds(c)
	side := int(math.Round(math.Min(w, h)))
	if side <= 0 || content == "" {
		return
	}
	img, err := QRImage(content, side, canvas.MustColor(o.Color))
	if err != nil {
		log.Printf("warning: overlay %q: %v", o.ID, err)
		return
	}
	c.Scoped(func() {
		o.begin(c)
		c.DrawImage(img, x, y, float64(side), float64(side))
	})
}

// QRImage encodes content as a side×side QR code without the quiet-zone
// border.
func QRImage(content string, side int, fg color.NRGBA) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.DisableBorder = true
	q.ForegroundColor = fg
	q.BackgroundColor = color.Transparent
	return q.Image(side), nil
}
