// Package overlay provides declarative decorative elements drawn on top of a
// card after its text layout: shapes, tiled patterns, corner ornaments and
// symbols. Geometry is resolved against the canvas on every draw, since
// themes may grow the canvas between renders.
package overlay

import (
	"log"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// Kind is an overlay category.
type Kind string

const (
	KindShape      Kind = "shape"
	KindPattern    Kind = "pattern"
	KindDecoration Kind = "decoration"
	KindSymbol     Kind = "symbol"
)

// RenderFunc draws o onto c. It must leave compositing and shadow state at
// their defaults when it returns.
type RenderFunc func(c *canvas.Context, o *Overlay)

// Overlay is one decorative element.
type Overlay struct {
	ID        string             `json:"id"`
	Kind      Kind               `json:"type"`
	Variant   string             `json:"variant,omitempty"`
	Position  Position           `json:"position"`
	Size      Size               `json:"size"`
	Color     string             `json:"color,omitempty"`
	Opacity   float64            `json:"opacity"`
	Enabled   bool               `json:"enabled"`
	BlendMode canvas.CompositeOp `json:"blendMode,omitempty"`
	Render    RenderFunc         `json:"-"`
}

// Bounds resolves the overlay's rectangle on c.
func (o *Overlay) Bounds(c Sized) (x, y, w, h float64) {
	w, h = ResolveSize(c, o.Size)
	x, y = ResolvePosition(c, o.Position, o.Size)
	return x, y, w, h
}

// Draw renders o with its opacity scaled by globalOpacity. Disabled overlays
// are skipped.
func (o *Overlay) Draw(c *canvas.Context, globalOpacity float64) {
	if !o.Enabled || o.Render == nil {
		return
	}
	scaled := *o
	scaled.Opacity = clamp01(o.Opacity * globalOpacity)
	scaled.Render(c, &scaled)
}

// begin applies the overlay's alpha and blend mode to c. Callers pair it
// with c.Scoped so the state is dropped afterwards.
func (o *Overlay) begin(c *canvas.Context) {
	c.GlobalAlpha = clamp01(o.Opacity)
	c.GlobalCompositeOperation = canvas.SourceOver
	if o.BlendMode != "" {
		c.GlobalCompositeOperation = o.BlendMode
	}
}

// Composite draws overlays in order. A panicking overlay is logged and
// skipped; compositing state is reset after each one regardless.
func Composite(c *canvas.Context, overlays []*Overlay, globalOpacity float64) {
	for _, o := range overlays {
		if o == nil {
			continue
		}
		drawOne(c, o, globalOpacity)
	}
}

func drawOne(c *canvas.Context, o *Overlay, globalOpacity float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("warning: overlay %q failed: %v", o.ID, r)
		}
		c.ResetCompositing()
		c.ResetShadow()
	}()
	o.Draw(c, globalOpacity)
}

// Clone returns a copy of o sharing its render function.
func (o *Overlay) Clone() *Overlay {
	cp := *o
	return &cp
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
