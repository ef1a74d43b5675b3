// result.go — Rendered card handle; applies background draws on Settle.
package render

import (
	"context"
	"image"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/theme"
)

// Result is a rendered card. The image is usable immediately; icons still
// loading appear after Settle.
type Result struct {
	Theme theme.ID

	canvas   *canvas.Context
	enhancer *layout.Enhancer
}

// Image returns the card pixels.
func (r *Result) Image() *image.RGBA { return r.canvas.Image() }

// Canvas returns the drawing surface.
func (r *Result) Canvas() *canvas.Context { return r.canvas }

// Pending returns how many background draws were dispatched.
func (r *Result) Pending() int { return r.enhancer.Pending() }

// Settle waits for background draws and applies the ones that loaded. It
// returns how many were drawn.
func (r *Result) Settle(ctx context.Context) (int, error) {
	return r.enhancer.Settle(ctx, r.canvas)
}
