package theme

import (
	"image/color"
	"math"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/layout"
)

// KillTeamLayout extends the canvas downward with a footer band, shaded left
// to right, and sets every line inside it. Lines are measured first so the
// band fits exactly; the photo is never covered.
type KillTeamLayout struct {
	Padding float64
	Border  float64
	Gap     float64
}

func (KillTeamLayout) Name() string { return "kill-team" }

// RenderStandardLayout measures the name and contextual lines, grows the
// canvas by the band height, paints the band and commits the lines into it.
// It returns the y below the last line.
func (k KillTeamLayout) RenderStandardLayout(rc *layout.RenderContext, t *Theme) float64 {
	c := rc.Canvas
	w := rc.Width()
	right := rc.Anchor.Right()

	band := nameLines(rc, t.Fonts, w-2*layout.Margin)
	ctxLines := layout.PlanLines(rc, t.Fonts)
	for i := len(ctxLines) - 1; i >= 0; i-- {
		band = append(band, ctxLines[i])
	}
	if len(band) == 0 {
		return rc.Height()
	}
	layout.WarnUnsupported(band)

	height := k.bandHeight(band)
	top := rc.Height()
	c.Grow(c.Width(), c.Height()+int(math.Ceil(height)))

	c.Scoped(func() {
		base := canvas.MustColor(t.Colors.Gradient)
		g := canvas.NewLinearGradient(0, top, w, top)
		g.AddColorStop(0, base)
		g.AddColorStop(1, darken(base, 0.45))
		c.FillStyle = g
		c.FillRect(0, top, w, height)

		c.SetFillColor(firstColor(t.Colors.Accent, "#ffffff"))
		c.FillRect(0, top, w, k.Border)
	})

	st := layout.TextStyle{
		Color:         firstColor(t.Colors.Text, layout.TextColor(false)),
		Align:         canvas.AlignLeft,
		Baseline:      canvas.BaselineAlphabetic,
		ShadowOpacity: rc.ShadowOpacity,
	}
	x := float64(layout.Margin)
	if right {
		st.Align = canvas.AlignRight
		x = w - layout.Margin
	}

	y := top + k.Border + k.Padding
	for _, ln := range band {
		baseline := y + ln.Metrics.ActualBoundingBoxAscent
		tx := x
		if ln.Icon != "" {
			ix := x
			if right {
				tx = x - layout.IconSize - layout.IconGap
				ix = x - layout.IconSize
			} else {
				tx = x + layout.IconSize + layout.IconGap
			}
			iy := y + (lineHeight(ln)-layout.IconSize)/2
			layout.DispatchIcon(rc, ln.Icon, ix, iy)
		}
		layout.CommitLine(c, ln, tx, baseline, st)
		y += lineHeight(ln) + k.Gap
	}
	return y - k.Gap
}

// RenderModelName does nothing; the name is set inside the band.
func (KillTeamLayout) RenderModelName(*layout.RenderContext, float64, *Theme) {}

func (k KillTeamLayout) bandHeight(lines []layout.Line) float64 {
	h := k.Border + 2*k.Padding
	for i, ln := range lines {
		h += lineHeight(ln)
		if i > 0 {
			h += k.Gap
		}
	}
	return h
}

func lineHeight(ln layout.Line) float64 {
	if ln.Icon != "" {
		return max(ln.Metrics.Height(), layout.IconSize)
	}
	return ln.Metrics.Height()
}

func darken(c color.NRGBA, f float64) color.NRGBA {
	scale := func(v uint8) uint8 { return uint8(float64(v) * (1 - f)) }
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
