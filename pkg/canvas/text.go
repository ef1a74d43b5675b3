// text.go — Font selection, measurement and text fill.
package canvas

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextMetrics mirrors the subset of the canvas TextMetrics used for layout.
type TextMetrics struct {
	Width                    float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
	FontBoundingBoxAscent    float64
	FontBoundingBoxDescent   float64
}

// Height returns the actual ascent plus descent.
func (m TextMetrics) Height() float64 {
	return m.ActualBoundingBoxAscent + m.ActualBoundingBoxDescent
}

// SetFont selects a canvas font string such as "bold 24px Inter, sans-serif".
// On error the previous font stays active.
func (c *Context) SetFont(css string) error {
	if _, err := c.faces.Face(css); err != nil {
		return err
	}
	c.font = css
	return nil
}

// Font returns the active canvas font string.
func (c *Context) Font() string { return c.font }

func (c *Context) face() font.Face {
	face, err := c.faces.Face(c.font)
	if err != nil {
		face, _ = c.faces.Face(DefaultFont)
	}
	return face
}

// MeasureText measures text in the active font.
func (c *Context) MeasureText(text string) TextMetrics {
	face := c.face()
	bounds, advance := font.BoundString(face, text)
	m := face.Metrics()
	tm := TextMetrics{
		Width:                  fixedToFloat(advance),
		FontBoundingBoxAscent:  fixedToFloat(m.Ascent),
		FontBoundingBoxDescent: fixedToFloat(m.Descent),
	}
	if text != "" {
		tm.ActualBoundingBoxAscent = math.Max(0, -fixedToFloat(bounds.Min.Y))
		tm.ActualBoundingBoxDescent = math.Max(0, fixedToFloat(bounds.Max.Y))
	}
	return tm
}

// FillText draws text with the fill style at (x, y), positioned according to
// TextAlign and TextBaseline.
func (c *Context) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	face := c.face()
	advance := fixedToFloat(font.MeasureString(face, text))

	switch c.TextAlign {
	case AlignRight:
		x -= advance
	case AlignCenter:
		x -= advance / 2
	}

	m := face.Metrics()
	ascent, descent := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
	switch c.TextBaseline {
	case BaselineTop:
		y += ascent
	case BaselineMiddle:
		y += (ascent - descent) / 2
	case BaselineBottom:
		y -= descent
	}

	mask := image.NewAlpha(c.img.Bounds())
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(text)

	rect := image.Rect(
		int(math.Floor(x))-2, int(math.Floor(y-ascent))-2,
		int(math.Ceil(x+advance))+2, int(math.Ceil(y+descent))+2,
	).Intersect(mask.Bounds())
	c.composite(maskSource{mask: mask, paint: c.FillStyle, rect: &rect})
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
