// config.go — Font contexts, style configs and the theme font resolver.

// Package fonts resolves themed font configuration into concrete styles for
// the drawing surface, and manages the font faces used to draw them.
package fonts

// Context is the semantic role a piece of text plays on a card.
type Context string

const (
	Title     Context = "title"
	Subtitle  Context = "subtitle"
	Header    Context = "header"
	Subheader Context = "subheader"
	Body      Context = "body"
	Caption   Context = "caption"
	Small     Context = "small"
	Tiny      Context = "tiny"
	Meta      Context = "meta"
)

// Contexts lists every font context in a stable order.
var Contexts = []Context{Title, Subtitle, Header, Subheader, Body, Caption, Small, Tiny, Meta}

// FontStyleConfig is a fully specified text style. Values are Tailwind-style
// tokens ("bold", "4xl", "wide") so the same config drives both the canvas
// and HTML previews.
type FontStyleConfig struct {
	Family        string `json:"family,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Size          string `json:"size,omitempty"`
	Style         string `json:"style,omitempty"`      // "normal" or "italic"
	Decoration    string `json:"decoration,omitempty"` // "none", "underline", "line-through"
	Transform     string `json:"transform,omitempty"`  // "uppercase", "lowercase", "capitalize", "normal-case"
	LetterSpacing string `json:"letterSpacing,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty"`
}

// ThemeFonts is a theme's font specification. Old-style themes set the flat
// legacy strings; newer themes use Defaults and Overrides keyed by context.
type ThemeFonts struct {
	TitleFont string `json:"titleFont,omitempty"`
	BodyFont  string `json:"bodyFont,omitempty"`
	SmallFont string `json:"smallFont,omitempty"`
	TinyFont  string `json:"tinyFont,omitempty"`

	Defaults  map[Context]FontStyleConfig `json:"defaults,omitempty"`
	Overrides map[Context]FontStyleConfig `json:"overrides,omitempty"`
}

var hardDefaults = map[Context]FontStyleConfig{
	Title:     {Family: "sans", Weight: "bold", Size: "4xl", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "tight"},
	Subtitle:  {Family: "sans", Weight: "semibold", Size: "2xl", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "snug"},
	Header:    {Family: "sans", Weight: "bold", Size: "xl", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "snug"},
	Subheader: {Family: "sans", Weight: "medium", Size: "lg", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "normal"},
	Body:      {Family: "sans", Weight: "normal", Size: "base", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "normal"},
	Caption:   {Family: "sans", Weight: "normal", Size: "sm", Style: "italic", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "normal"},
	Small:     {Family: "sans", Weight: "normal", Size: "sm", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "normal"},
	Tiny:      {Family: "sans", Weight: "normal", Size: "xs", Style: "normal", Decoration: "none", Transform: "normal-case", LetterSpacing: "normal", LineHeight: "normal"},
	Meta:      {Family: "mono", Weight: "normal", Size: "xs", Style: "normal", Decoration: "none", Transform: "uppercase", LetterSpacing: "wide", LineHeight: "normal"},
}

// HardDefault returns the built-in style for ctx. Unknown contexts get the
// body style.
func HardDefault(ctx Context) FontStyleConfig {
	if cfg, ok := hardDefaults[ctx]; ok {
		return cfg
	}
	return hardDefaults[Body]
}

// GetFontConfig resolves the style for ctx. Priority, lowest first: the hard
// default, the theme's Defaults entry (which replaces the base wholesale), and
// the theme's Overrides entry (merged field by field). The result never has an
// empty field.
func GetFontConfig(ctx Context, tf *ThemeFonts) FontStyleConfig {
	hard := HardDefault(ctx)
	result := hard
	if tf == nil {
		return result
	}

	if def, ok := tf.Defaults[ctx]; ok {
		result = def
		mergeStyle(&result, hard, true)
	}
	if over, ok := tf.Overrides[ctx]; ok {
		mergeStyle(&result, over, false)
	}
	return result
}

// mergeStyle copies non-empty fields of over onto base. With onlyBlank set it
// fills just the fields base leaves empty.
func mergeStyle(base *FontStyleConfig, over FontStyleConfig, onlyBlank bool) {
	set := func(dst *string, v string) {
		if v == "" {
			return
		}
		if onlyBlank && *dst != "" {
			return
		}
		*dst = v
	}
	set(&base.Family, over.Family)
	set(&base.Weight, over.Weight)
	set(&base.Size, over.Size)
	set(&base.Style, over.Style)
	set(&base.Decoration, over.Decoration)
	set(&base.Transform, over.Transform)
	set(&base.LetterSpacing, over.LetterSpacing)
	set(&base.LineHeight, over.LineHeight)
}

// Clone returns a deep copy of tf.
func (tf *ThemeFonts) Clone() *ThemeFonts {
	if tf == nil {
		return nil
	}
	out := *tf
	if tf.Defaults != nil {
		out.Defaults = make(map[Context]FontStyleConfig, len(tf.Defaults))
		for k, v := range tf.Defaults {
			out.Defaults[k] = v
		}
	}
	if tf.Overrides != nil {
		out.Overrides = make(map[Context]FontStyleConfig, len(tf.Overrides))
		for k, v := range tf.Overrides {
			out.Overrides[k] = v
		}
	}
	return &out
}

// SetOverride merges cfg into the override entry for ctx.
func (tf *ThemeFonts) SetOverride(ctx Context, cfg FontStyleConfig) {
	if tf.Overrides == nil {
		tf.Overrides = make(map[Context]FontStyleConfig)
	}
	cur := tf.Overrides[ctx]
	mergeStyle(&cur, cfg, false)
	tf.Overrides[ctx] = cur
}
