package theme

import (
	"strings"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/layout"
)

// Standard is the stock layout: contextual lines from the anchor corner,
// then the model name.
type Standard struct{}

func (Standard) Name() string { return "standard" }

func (Standard) RenderStandardLayout(rc *layout.RenderContext, t *Theme) float64 {
	return layout.RenderStandardTextLayout(rc, t.Fonts)
}

func (Standard) RenderModelName(rc *layout.RenderContext, y float64, t *Theme) {
	layout.RenderStandardModelName(rc, y, t.Fonts)
}

// MarathonLayout pins the model name to the top-right corner on a solid label
// plate sized to the text, whatever anchor the caller asked for. The
// contextual lines always sit bottom-right.
type MarathonLayout struct {
	// Plate is the label colour; the theme accent when empty.
	Plate string
	PadX  float64
	PadY  float64
}

func (MarathonLayout) Name() string { return "marathon" }

func (m MarathonLayout) RenderStandardLayout(rc *layout.RenderContext, t *Theme) float64 {
	pinned := *rc
	pinned.Anchor = layout.BottomRight
	return layout.RenderStandardTextLayout(&pinned, t.Fonts)
}

// RenderModelName ignores y; the name position is fixed.
func (m MarathonLayout) RenderModelName(rc *layout.RenderContext, _ float64, t *Theme) {
	parts := nameLines(rc, t.Fonts, rc.Width()-2*layout.Margin-2*m.PadX)
	if len(parts) == 0 {
		return
	}
	layout.WarnUnsupported(parts[:1])

	c := rc.Canvas
	prev := c.Font()
	_ = c.SetFont(parts[0].Font)
	lineHeight := layout.LineHeight(c)
	_ = c.SetFont(prev)

	var textW float64
	for _, p := range parts {
		textW = max(textW, p.Metrics.Width)
	}
	plateW := textW + 2*m.PadX
	plateH := lineHeight*float64(len(parts)) + 2*m.PadY
	px := rc.Width() - layout.Margin - plateW
	py := float64(layout.Margin)

	c.Scoped(func() {
		c.SetFillColor(firstColor(m.Plate, t.Colors.Accent, "#000000"))
		c.FillRect(px, py, plateW, plateH)
	})

	st := layout.TextStyle{
		Color:         firstColor(t.Colors.Text, layout.TextColor(false)),
		Align:         canvas.AlignRight,
		Baseline:      canvas.BaselineTop,
		ShadowOpacity: rc.ShadowOpacity,
	}
	y := py + m.PadY
	for _, p := range parts {
		layout.CommitLine(c, p, rc.Width()-layout.Margin-m.PadX, y, st)
		y += lineHeight
	}
}

// nameLines measures the model name as title lines wrapped to maxWidth.
func nameLines(rc *layout.RenderContext, tf *fonts.ThemeFonts, maxWidth float64) []layout.Line {
	c := rc.Canvas
	ln := layout.NewLine(c, layout.LineName, fonts.SlotTitle, rc.Subject.Name, tf)
	if strings.TrimSpace(ln.Text) == "" {
		return nil
	}

	prev := c.Font()
	defer func() { _ = c.SetFont(prev) }()
	_ = c.SetFont(ln.Font)

	var lines []layout.Line
	for _, text := range layout.WrapText(c, ln.Text, maxWidth) {
		part := ln
		part.Text = text
		part.Metrics = c.MeasureText(text)
		lines = append(lines, part)
	}
	return lines
}

func firstColor(cs ...string) string {
	for _, c := range cs {
		if c != "" {
			return c
		}
	}
	return ""
}
