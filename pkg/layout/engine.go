// engine.go — Standard text layout: measure the contextual lines, then draw
// them from the anchor corner inward with a drop shadow per line.
package layout

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
)

// LineKind identifies a line of the standard layout.
type LineKind string

const (
	LineIdentity   LineKind = "identity"
	LineDate       LineKind = "date"
	LineCollection LineKind = "collection"
	LineGame       LineKind = "game"
	LineName       LineKind = "name"
)

// Fixed vertical advances per line, in pixels. They do not follow the
// measured text height, so very large font overrides can overlap.
const (
	AdvanceTiny  = 20
	AdvanceSmall = 24
	AdvanceBody  = 28
	TitleGap     = 10

	Margin   = 20
	IconSize = 20
	IconGap  = 6

	ShadowBlur    = 8
	ShadowOffsetX = 2
	ShadowOffsetY = 2
)

// Line is one measured line of text, ready to commit.
type Line struct {
	Kind    LineKind
	Slot    fonts.LegacySlot
	Config  fonts.FontStyleConfig
	Font    string
	Text    string
	Icon    string
	Advance float64
	Metrics canvas.TextMetrics
}

// Width returns the line's drawn width including room for its icon.
func (l Line) Width() float64 {
	if l.Icon != "" {
		return l.Metrics.Width + IconSize + IconGap
	}
	return l.Metrics.Width
}

// NewLine resolves the font for slot, transforms text and measures it on c.
// The canvas font is restored afterwards.
func NewLine(c *canvas.Context, kind LineKind, slot fonts.LegacySlot, text string, tf *fonts.ThemeFonts) Line {
	cfg := fonts.GetFontConfig(slot.Context(), tf)
	ln := Line{
		Kind:    kind,
		Slot:    slot,
		Config:  cfg,
		Font:    fonts.GetLegacyFontString(slot, tf),
		Text:    fonts.TransformText(text, cfg),
		Advance: advanceFor(slot),
	}
	prev := c.Font()
	if err := c.SetFont(ln.Font); err != nil {
		log.Printf("warning: %s line: %v", kind, err)
	}
	ln.Metrics = c.MeasureText(ln.Text)
	_ = c.SetFont(prev)
	return ln
}

func advanceFor(slot fonts.LegacySlot) float64 {
	switch slot {
	case fonts.SlotTiny:
		return AdvanceTiny
	case fonts.SlotSmall:
		return AdvanceSmall
	default:
		return AdvanceBody
	}
}

// PlanLines is the measure pass: it decides which contextual lines are shown
// and measures them, without drawing. Lines are ordered closest to the
// anchor edge first.
func PlanLines(rc *RenderContext, tf *fonts.ThemeFonts) []Line {
	var lines []Line
	if text, ok := IdentityLine(rc); ok {
		lines = append(lines, NewLine(rc.Canvas, LineIdentity, fonts.SlotTiny, text, tf))
	}
	if text, ok := DateLine(rc); ok {
		lines = append(lines, NewLine(rc.Canvas, LineDate, fonts.SlotTiny, text, tf))
	}
	if text, ok := CollectionLine(rc); ok {
		lines = append(lines, NewLine(rc.Canvas, LineCollection, fonts.SlotSmall, text, tf))
	}
	if name, icon, ok := GameLine(rc); ok {
		ln := NewLine(rc.Canvas, LineGame, fonts.SlotBody, name, tf)
		ln.Icon = icon
		lines = append(lines, ln)
	}
	return lines
}

// TextStyle is how a line is painted.
type TextStyle struct {
	Color         string
	Align         canvas.TextAlign
	Baseline      canvas.TextBaseline
	ShadowOpacity float64
	DarkText      bool
}

// StyleFor returns the standard text style for rc.
func StyleFor(rc *RenderContext) TextStyle {
	st := TextStyle{
		Color:         TextColor(rc.DarkText),
		Align:         canvas.AlignLeft,
		Baseline:      canvas.BaselineTop,
		ShadowOpacity: rc.ShadowOpacity,
		DarkText:      rc.DarkText,
	}
	if rc.Anchor.Right() {
		st.Align = canvas.AlignRight
	}
	if rc.Anchor.Bottom() {
		st.Baseline = canvas.BaselineBottom
	}
	return st
}

// TextColor is the fill for light or dark text.
func TextColor(dark bool) string {
	if dark {
		return "#1a1a1a"
	}
	return "#ffffff"
}

// ShadowColor is the drop shadow for light or dark text at opacity.
func ShadowColor(dark bool, opacity float64) color.NRGBA {
	if dark {
		return canvas.WithAlpha(color.NRGBA{255, 255, 255, 255}, opacity)
	}
	return canvas.WithAlpha(color.NRGBA{0, 0, 0, 255}, opacity)
}

// CommitLine is the commit pass for one line: it draws text at (x, y) with
// the standard drop shadow and leaves the shadow cleared.
func CommitLine(c *canvas.Context, ln Line, x, y float64, st TextStyle) {
	if ln.Text == "" {
		return
	}
	c.Scoped(func() {
		if err := c.SetFont(ln.Font); err != nil {
			log.Printf("warning: %s line: %v", ln.Kind, err)
		}
		c.SetFillColor(st.Color)
		c.TextAlign = st.Align
		c.TextBaseline = st.Baseline
		c.SetShadow(ShadowColor(st.DarkText, st.ShadowOpacity), ShadowBlur, ShadowOffsetX, ShadowOffsetY)
		c.FillText(ln.Text, x, y)
	})
}

// WarnUnsupported logs, once, the font properties of lines the canvas
// cannot honour.
func WarnUnsupported(lines []Line) {
	seen := make(map[string]bool)
	var msgs []string
	for _, ln := range lines {
		for _, w := range fonts.CanvasWarnings(ln.Config) {
			if !seen[w] {
				seen[w] = true
				msgs = append(msgs, w)
			}
		}
	}
	if len(msgs) > 0 {
		log.Printf("warning: ignoring %s", strings.Join(msgs, "; "))
	}
}

// RenderStandardTextLayout draws the contextual lines from the anchor corner
// inward and returns the y coordinate where the model name goes. Game icons
// are handed to rc.Enhancer and appear when it settles.
func RenderStandardTextLayout(rc *RenderContext, tf *fonts.ThemeFonts) float64 {
	lines := PlanLines(rc, tf)
	WarnUnsupported(lines)

	st := StyleFor(rc)
	right, bottom := rc.Anchor.Right(), rc.Anchor.Bottom()
	x := float64(Margin)
	if right {
		x = rc.Width() - Margin
	}
	y := float64(Margin)
	if bottom {
		y = rc.Height() - Margin
	}

	for _, ln := range lines {
		tx := x
		if ln.Icon != "" {
			ix := x
			if right {
				tx = x - IconSize - IconGap
				ix = x - IconSize
			} else {
				tx = x + IconSize + IconGap
			}
			iy := y
			if bottom {
				iy = y - IconSize
			}
			DispatchIcon(rc, ln.Icon, ix, iy)
		}
		CommitLine(rc.Canvas, ln, tx, y, st)

		if bottom {
			y -= ln.Advance
		} else {
			y += ln.Advance
		}
	}

	if len(lines) > 0 {
		if bottom {
			y -= TitleGap
		} else {
			y += TitleGap
		}
	}
	return y
}

// DispatchIcon loads an icon in the background and draws it at (x, y) when
// the enhancer settles. The text line never waits for it.
func DispatchIcon(rc *RenderContext, ref string, x, y float64) {
	if rc.Enhancer == nil || rc.Loader == nil {
		return
	}
	loader := rc.Loader
	rc.Enhancer.Go(fmt.Sprintf("game icon %s", ref), func(ctx context.Context) (DrawFunc, error) {
		img, err := loader.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		return func(c *canvas.Context) {
			c.DrawImage(img, x, y, IconSize, IconSize)
		}, nil
	})
}

// RenderStandardModelName draws the subject name in the title font at y,
// wrapped to the canvas width. For bottom anchors y is the bottom of the
// last line and the text grows upward.
func RenderStandardModelName(rc *RenderContext, y float64, tf *fonts.ThemeFonts) {
	ln := NewLine(rc.Canvas, LineName, fonts.SlotTitle, rc.Subject.Name, tf)
	if strings.TrimSpace(ln.Text) == "" {
		return
	}
	WarnUnsupported([]Line{ln})

	st := StyleFor(rc)
	x := float64(Margin)
	if rc.Anchor.Right() {
		x = rc.Width() - Margin
	}

	c := rc.Canvas
	prev := c.Font()
	_ = c.SetFont(ln.Font)
	wrapped := WrapText(c, ln.Text, rc.Width()-2*Margin)
	lineHeight := LineHeight(c)
	_ = c.SetFont(prev)

	if rc.Anchor.Bottom() {
		for i := len(wrapped) - 1; i >= 0; i-- {
			part := ln
			part.Text = wrapped[i]
			CommitLine(c, part, x, y, st)
			y -= lineHeight
		}
		return
	}
	for _, text := range wrapped {
		part := ln
		part.Text = text
		CommitLine(c, part, x, y, st)
		y += lineHeight
	}
}

// LineHeight returns the advance between wrapped lines in the current font.
func LineHeight(c *canvas.Context) float64 {
	m := c.MeasureText("Hg")
	return (m.FontBoundingBoxAscent + m.FontBoundingBoxDescent) * 1.1
}

// WrapText breaks text into lines no wider than maxWidth in the current
// font. A single word wider than maxWidth gets a line of its own.
func WrapText(c *canvas.Context, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if c.MeasureText(candidate).Width > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}
