// css.go — Convert resolved font configs to canvas font strings and CSS classes.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
)

// FamilyStacks maps family tokens to CSS font stacks.
var FamilyStacks = map[string]string{
	"sans":      "Inter, system-ui, sans-serif",
	"serif":     "Georgia, 'Times New Roman', serif",
	"mono":      "'JetBrains Mono', Menlo, monospace",
	"display":   "Orbitron, Impact, sans-serif",
	"gothic":    "UnifrakturMaguntia, 'Old English Text MT', serif",
	"condensed": "Oswald, 'Arial Narrow', sans-serif",
	"smallcaps": "'Cinzel', 'Go Smallcaps', serif",
}

// Weights maps weight names to numeric CSS weights.
var Weights = map[string]int{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"normal":     400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

// Sizes maps Tailwind size tokens to pixel sizes.
var Sizes = map[string]float64{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
	"4xl":  36,
	"5xl":  48,
	"6xl":  60,
	"7xl":  72,
	"8xl":  96,
	"9xl":  128,
}

// FamilyStack returns the CSS stack for a family token; unknown tokens are
// treated as a literal family list.
func FamilyStack(family string) string {
	if s, ok := FamilyStacks[family]; ok {
		return s
	}
	if family == "" {
		return FamilyStacks["sans"]
	}
	return family
}

// WeightValue returns the numeric weight for a name or a numeric string.
func WeightValue(weight string) int {
	if w, ok := Weights[weight]; ok {
		return w
	}
	if n, err := strconv.Atoi(weight); err == nil && n > 0 {
		return n
	}
	return 400
}

// SizePx returns the pixel size for a Tailwind token or a "NNpx" literal.
func SizePx(size string) float64 {
	if px, ok := Sizes[size]; ok {
		return px
	}
	if v, err := strconv.ParseFloat(strings.TrimSuffix(size, "px"), 64); err == nil && v > 0 {
		return v
	}
	return Sizes["base"]
}

// FontConfigToCSSFont renders cfg as a canvas font string:
// "{style} {weight} {size}px {family-stack}".
func FontConfigToCSSFont(cfg FontStyleConfig) string {
	style := cfg.Style
	if style == "" {
		style = "normal"
	}
	return fmt.Sprintf("%s %d %spx %s",
		style,
		WeightValue(cfg.Weight),
		strconv.FormatFloat(SizePx(cfg.Size), 'f', -1, 64),
		FamilyStack(cfg.Family))
}

var (
	trackingClasses = map[string]string{
		"tighter": "tracking-tighter",
		"tight":   "tracking-tight",
		"normal":  "tracking-normal",
		"wide":    "tracking-wide",
		"wider":   "tracking-wider",
		"widest":  "tracking-widest",
	}
	leadingClasses = map[string]string{
		"none":    "leading-none",
		"tight":   "leading-tight",
		"snug":    "leading-snug",
		"normal":  "leading-normal",
		"relaxed": "leading-relaxed",
		"loose":   "leading-loose",
	}
)

// FontConfigToTailwindClasses renders cfg as a Tailwind class list for HTML
// preview surfaces.
func FontConfigToTailwindClasses(cfg FontStyleConfig) string {
	var classes []string
	add := func(c string) {
		if c != "" {
			classes = append(classes, c)
		}
	}

	if _, ok := FamilyStacks[cfg.Family]; ok {
		add("font-" + cfg.Family)
	} else if cfg.Family != "" {
		add("font-[" + strings.ReplaceAll(cfg.Family, " ", "_") + "]")
	}
	if _, ok := Weights[cfg.Weight]; ok {
		add("font-" + cfg.Weight)
	}
	if _, ok := Sizes[cfg.Size]; ok {
		add("text-" + cfg.Size)
	} else if cfg.Size != "" {
		add("text-[" + cfg.Size + "]")
	}
	switch cfg.Style {
	case "italic":
		add("italic")
	case "normal":
		add("not-italic")
	}
	switch cfg.Decoration {
	case "underline", "line-through", "overline":
		add(cfg.Decoration)
	case "none":
		add("no-underline")
	}
	switch cfg.Transform {
	case "uppercase", "lowercase", "capitalize", "normal-case":
		add(cfg.Transform)
	}
	add(trackingClasses[cfg.LetterSpacing])
	add(leadingClasses[cfg.LineHeight])

	return strings.Join(classes, " ")
}

// CanvasWarnings lists properties of cfg the canvas path cannot honour.
func CanvasWarnings(cfg FontStyleConfig) []string {
	var out []string
	if cfg.LetterSpacing != "" && cfg.LetterSpacing != "normal" {
		out = append(out, fmt.Sprintf("letter-spacing %q is not supported on canvas", cfg.LetterSpacing))
	}
	return out
}

// LegacySlot names one of the four flat font strings old-style themes use.
type LegacySlot string

const (
	SlotTitle LegacySlot = "title"
	SlotBody  LegacySlot = "body"
	SlotSmall LegacySlot = "small"
	SlotTiny  LegacySlot = "tiny"
)

// Context returns the font context a legacy slot resolves through.
func (s LegacySlot) Context() Context {
	switch s {
	case SlotTitle:
		return Title
	case SlotSmall:
		return Small
	case SlotTiny:
		return Tiny
	default:
		return Body
	}
}

// GetLegacyFontString returns the theme's raw font string for slot when one
// is set, otherwise the canvas font of the resolved config.
func GetLegacyFontString(slot LegacySlot, tf *ThemeFonts) string {
	if tf != nil {
		var raw string
		switch slot {
		case SlotTitle:
			raw = tf.TitleFont
		case SlotBody:
			raw = tf.BodyFont
		case SlotSmall:
			raw = tf.SmallFont
		case SlotTiny:
			raw = tf.TinyFont
		}
		if raw != "" {
			return raw
		}
	}
	return FontConfigToCSSFont(GetFontConfig(slot.Context(), tf))
}

// CSSFont is a parsed canvas font string.
type CSSFont struct {
	Style    string // "normal" or "italic"
	Weight   int
	SizePx   float64
	Families []string
}

// ParseCSSFont parses the canvas font shorthand, e.g.
// "italic 700 36px Inter, sans-serif" or "bold 24px 'Cinzel', serif".
func ParseCSSFont(s string) (CSSFont, error) {
	out := CSSFont{Style: "normal", Weight: 400}
	fields := strings.Fields(s)

	sizeIdx := -1
	for i, f := range fields {
		if size, ok := parsePxToken(f); ok {
			out.SizePx = size
			sizeIdx = i
			break
		}
		switch f {
		case "italic", "oblique":
			out.Style = "italic"
		case "normal", "small-caps":
		case "bold":
			out.Weight = 700
		case "bolder":
			out.Weight = 800
		case "lighter":
			out.Weight = 300
		default:
			if n, err := strconv.Atoi(f); err == nil {
				out.Weight = n
			}
		}
	}
	if sizeIdx < 0 {
		return CSSFont{}, fmt.Errorf("font %q: missing pixel size", s)
	}

	stack := strings.Join(fields[sizeIdx+1:], " ")
	for _, fam := range strings.Split(stack, ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `'"`)
		if fam != "" {
			out.Families = append(out.Families, fam)
		}
	}
	if len(out.Families) == 0 {
		out.Families = []string{"sans-serif"}
	}
	return out, nil
}

// parsePxToken accepts "36px" and the "36px/1.2" line-height form.
func parsePxToken(tok string) (float64, bool) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	if !strings.HasSuffix(tok, "px") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
