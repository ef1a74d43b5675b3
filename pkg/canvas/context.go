// Package canvas is an in-memory 2D drawing surface modelled on the HTML canvas
// context: one stateful context per surface, whose alpha, composite mode,
// shadow and font settings apply to every subsequent draw call.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/xob0t/hobbycard/pkg/fonts"
)

// CompositeOp is a canvas globalCompositeOperation value.
type CompositeOp string

const (
	SourceOver      CompositeOp = "source-over"
	Multiply        CompositeOp = "multiply"
	Screen          CompositeOp = "screen"
	DestinationOver CompositeOp = "destination-over"
)

// TextAlign is a canvas textAlign value.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignRight  TextAlign = "right"
	AlignCenter TextAlign = "center"
)

// TextBaseline is a canvas textBaseline value.
type TextBaseline string

const (
	BaselineAlphabetic TextBaseline = "alphabetic"
	BaselineTop        TextBaseline = "top"
	BaselineMiddle     TextBaseline = "middle"
	BaselineBottom     TextBaseline = "bottom"
)

// DefaultFont is the font a fresh context starts with.
const DefaultFont = "normal 400 10px sans-serif"

// Context is a drawing surface plus its drawing state.
type Context struct {
	img *image.RGBA

	GlobalAlpha              float64
	GlobalCompositeOperation CompositeOp

	FillStyle   Paint
	StrokeStyle Paint
	LineWidth   float64

	ShadowColor   color.NRGBA
	ShadowBlur    float64
	ShadowOffsetX float64
	ShadowOffsetY float64

	TextAlign    TextAlign
	TextBaseline TextBaseline

	font  string
	faces *fonts.FaceCache
}

// New creates a transparent w×h surface drawing text with the default font
// registry.
func New(w, h int) *Context {
	return NewWithFaces(w, h, fonts.Default().NewCache())
}

// NewWithFaces creates a surface that resolves fonts through faces.
func NewWithFaces(w, h int, faces *fonts.FaceCache) *Context {
	c := &Context{
		img:   image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))),
		faces: faces,
	}
	c.ResetState()
	return c
}

// FromImage creates a surface the size of src with src drawn into it.
func FromImage(src image.Image, faces *fonts.FaceCache) *Context {
	b := src.Bounds()
	c := NewWithFaces(b.Dx(), b.Dy(), faces)
	draw.Draw(c.img, c.img.Bounds(), src, b.Min, draw.Src)
	return c
}

// Width returns the surface width in pixels.
func (c *Context) Width() int { return c.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (c *Context) Height() int { return c.img.Bounds().Dy() }

// Image returns the backing pixel buffer.
func (c *Context) Image() *image.RGBA { return c.img }

// ResetState restores every drawing property to its default.
func (c *Context) ResetState() {
	c.ResetCompositing()
	c.ResetShadow()
	c.FillStyle = Solid{0, 0, 0, 255}
	c.StrokeStyle = Solid{0, 0, 0, 255}
	c.LineWidth = 1
	c.TextAlign = AlignLeft
	c.TextBaseline = BaselineAlphabetic
	c.font = DefaultFont
}

// ResetCompositing restores globalAlpha to 1 and the composite operation to
// source-over.
func (c *Context) ResetCompositing() {
	c.GlobalAlpha = 1
	c.GlobalCompositeOperation = SourceOver
}

// ResetShadow makes the shadow transparent with no blur or offset.
func (c *Context) ResetShadow() {
	c.ShadowColor = color.NRGBA{}
	c.ShadowBlur = 0
	c.ShadowOffsetX = 0
	c.ShadowOffsetY = 0
}

// SetShadow configures the drop shadow for subsequent draws.
func (c *Context) SetShadow(col color.NRGBA, blur, offsetX, offsetY float64) {
	c.ShadowColor = col
	c.ShadowBlur = blur
	c.ShadowOffsetX = offsetX
	c.ShadowOffsetY = offsetY
}

// SetFillColor sets a solid fill from a CSS colour string.
func (c *Context) SetFillColor(css string) { c.FillStyle = SolidColor(css) }

// SetStrokeColor sets a solid stroke from a CSS colour string.
func (c *Context) SetStrokeColor(css string) { c.StrokeStyle = SolidColor(css) }

// Clear makes every pixel transparent.
func (c *Context) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Resize replaces the surface with a cleared w×h one, like assigning
// canvas.width. Drawing state is reset.
func (c *Context) Resize(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	c.ResetState()
}

// Grow resizes the surface to w×h keeping existing pixels anchored at the
// top-left; new area is transparent. Drawing state is kept.
func (c *Context) Grow(w, h int) {
	next := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.Draw(next, c.img.Bounds(), c.img, image.Point{}, draw.Src)
	c.img = next
}

// FillRect fills a rectangle with the fill style.
func (c *Context) FillRect(x, y, w, h float64) {
	c.Fill(NewPath().Rect(x, y, w, h))
}

// StrokeRect strokes a rectangle outline with the stroke style.
func (c *Context) StrokeRect(x, y, w, h float64) {
	c.Stroke(NewPath().Rect(x, y, w, h))
}

// Fill fills p with the fill style.
func (c *Context) Fill(p *Path) {
	mask := p.rasterize(c.Width(), c.Height())
	c.composite(maskSource{mask: mask, paint: c.FillStyle})
}

// Stroke strokes p with the stroke style and line width.
func (c *Context) Stroke(p *Path) {
	lw := c.LineWidth
	if lw <= 0 {
		return
	}
	mask := p.strokeOutline(lw).rasterize(c.Width(), c.Height())
	c.composite(maskSource{mask: mask, paint: c.StrokeStyle})
}
