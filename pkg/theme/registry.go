package theme

import (
	"fmt"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/overlay"
)

// Built-in theme ids.
const (
	Default   ID = "default"
	Classic   ID = "classic"
	Grimdark  ID = "grimdark"
	Neon      ID = "neon"
	Parchment ID = "parchment"
	Minimal   ID = "minimal"
	Imperial  ID = "imperial"
	Arcane    ID = "arcane"
	Verdant   ID = "verdant"
	Inferno   ID = "inferno"
	Marathon  ID = "marathon"
	KillTeam  ID = "killteam"
)

var (
	builtinIDs = []ID{
		Default, Classic, Grimdark, Neon, Parchment, Minimal,
		Imperial, Arcane, Verdant, Inferno, Marathon, KillTeam,
	}
	builtins = newBuiltins()
)

// Lookup returns a copy of the built-in theme id.
func Lookup(id ID) (*Theme, error) {
	t, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	return t.Clone(), nil
}

// All returns copies of every built-in theme in registry order.
func All() []*Theme {
	out := make([]*Theme, 0, len(builtinIDs))
	for _, id := range builtinIDs {
		out = append(out, builtins[id].Clone())
	}
	return out
}

// IDs returns the built-in theme ids in registry order.
func IDs() []ID {
	return append([]ID(nil), builtinIDs...)
}

var shareBadge = ShareBadge{Size: 64, Padding: 6}

func newBuiltins() map[ID]*Theme {
	themes := []*Theme{
		{
			ID:     Default,
			Name:   "Default",
			Colors: Colors{Gradient: "0, 0, 0", Border: "rgba(255, 255, 255, 0.2)"},
			Options: RenderOptions{
				CustomComponents: []Component{shareBadge},
			},
			Metadata: Metadata{Description: "Clean white text over a dark fade.", Tags: []string{"simple"}},
		},
		{
			ID:     Classic,
			Name:   "Classic",
			Colors: Colors{Gradient: "40, 26, 13", Border: "rgba(212, 175, 55, 0.8)", Accent: "#d4af37"},
			Fonts: &fonts.ThemeFonts{
				TitleFont: "bold 36px Georgia, serif",
				BodyFont:  "18px Georgia, serif",
				SmallFont: "italic 14px Georgia, serif",
				TinyFont:  "12px Georgia, serif",
			},
			Options: RenderOptions{
				VisualOverlays:   corners("classic", overlay.Flourish, "#d4af37", 0.8),
				CustomComponents: []Component{shareBadge},
			},
			Metadata: Metadata{Description: "Gilded serif card with corner flourishes.", Tags: []string{"elegant", "gold"}},
		},
		{
			ID:     Grimdark,
			Name:   "Grimdark",
			Colors: Colors{Gradient: "20, 0, 0", Border: "rgba(120, 0, 0, 0.9)", Accent: "#8b0000"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "gothic", Size: "5xl", Weight: "normal"},
					fonts.Body:  {Family: "serif", Transform: "uppercase", LetterSpacing: "wider"},
				},
			},
			Options: RenderOptions{
				LoadFonts:      LoadFamily("UnifrakturMaguntia", FontFile{fonts.Regular, "UnifrakturMaguntia-Book.ttf"}),
				VisualOverlays: append([]*overlay.Overlay{
					overlay.NewPattern("grimdark-scratches", overlay.Diagonal, 14, "#3a0000", 0.35),
					overlay.NewSymbol("grimdark-skull",
						overlay.Position{X: overlay.Center, Y: overlay.Px(24)},
						overlay.Size{Width: overlay.Px(56), Height: overlay.Px(56)},
						"#d8d0c0", 0.7, skullEmblem),
				}, corners("grimdark", overlay.Geometric, "#8b0000", 0.9)...),
			},
			Metadata: Metadata{Description: "Blackletter titles, blood-red trim and a skull.", Tags: []string{"dark", "gothic"}},
		},
		{
			ID:     Neon,
			Name:   "Neon",
			Colors: Colors{Gradient: "10, 0, 30", Border: "rgba(0, 255, 255, 0.9)", Accent: "#00ffff", Text: "#e0ffff"},
			Fonts: &fonts.ThemeFonts{
				Defaults: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "display", Weight: "black", Size: "4xl", Style: "normal", Decoration: "none", Transform: "uppercase", LetterSpacing: "widest", LineHeight: "tight"},
				},
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Small: {Family: "mono"},
					fonts.Tiny:  {Family: "mono", Transform: "uppercase"},
				},
			},
			Options: RenderOptions{
				LoadFonts: LoadFamily("Orbitron",
					FontFile{fonts.Regular, "Orbitron-Regular.ttf"},
					FontFile{fonts.Bold, "Orbitron-Bold.ttf"}),
				VisualOverlays: []*overlay.Overlay{
					screen(overlay.NewPattern("neon-grid", overlay.Grid, 32, "#ff00ff", 0.25)),
					overlay.NewShape("neon-orb", overlay.Circle,
						overlay.Position{X: overlay.Px(24), Y: overlay.Px(24)},
						overlay.Size{Width: overlay.Px(18), Height: overlay.Px(18)},
						"#00ffff", 0.9),
				},
				CustomComponents: []Component{shareBadge},
			},
			Metadata: Metadata{Description: "Synthwave grid and glowing cyan trim.", Tags: []string{"retro", "bright"}},
		},
		{
			ID:     Parchment,
			Name:   "Parchment",
			Colors: Colors{Gradient: "60, 40, 20", Border: "rgba(139, 90, 43, 0.85)", Accent: "#8b5a2b"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title:   {Family: "serif", Style: "italic"},
					fonts.Caption: {Family: "serif"},
				},
			},
			Options: RenderOptions{
				VisualOverlays: append([]*overlay.Overlay{
					overlay.NewPattern("parchment-grain", overlay.Dots, 6, "#c8a165", 0.3),
				}, corners("parchment", overlay.Organic, "#8b5a2b", 0.7)...),
			},
			Metadata: Metadata{Description: "Aged paper grain with vine corners.", Tags: []string{"fantasy", "warm"}},
		},
		{
			ID:     Minimal,
			Name:   "Minimal",
			Colors: Colors{Gradient: "0, 0, 0", Border: "rgba(0, 0, 0, 0)"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Weight: "light", Size: "3xl", LetterSpacing: "tight"},
					fonts.Body:  {Weight: "light"},
					fonts.Small: {Transform: "lowercase"},
					fonts.Tiny:  {Transform: "lowercase"},
				},
			},
			Options: RenderOptions{
				CustomComponents: []Component{shareBadge},
			},
			Metadata: Metadata{Description: "Light type and nothing else.", Tags: []string{"simple"}},
		},
		{
			ID:     Imperial,
			Name:   "Imperial",
			Colors: Colors{Gradient: "25, 20, 10", Border: "rgba(255, 215, 0, 0.85)", Accent: "#ffd700"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "smallcaps", Transform: "uppercase", LetterSpacing: "wide"},
					fonts.Body:  {Family: "smallcaps"},
				},
			},
			Options: RenderOptions{
				LoadFonts: LoadFamily("Cinzel",
					FontFile{fonts.Regular, "Cinzel-Regular.ttf"},
					FontFile{fonts.Bold, "Cinzel-Bold.ttf"}),
				VisualOverlays: append([]*overlay.Overlay{
					overlay.NewSymbol("imperial-eagle",
						overlay.Position{X: overlay.Center, Y: overlay.Px(20)},
						overlay.Size{Width: overlay.Px(96), Height: overlay.Px(64)},
						"#ffd700", 0.85, eagleEmblem),
				}, corners("imperial", overlay.Flourish, "#ffd700", 0.75)...),
			},
			Metadata: Metadata{Description: "Golden aquila over a stately serif.", Tags: []string{"gold", "grand"}},
		},
		{
			ID:     Arcane,
			Name:   "Arcane",
			Colors: Colors{Gradient: "30, 10, 60", Border: "rgba(155, 89, 182, 0.85)", Accent: "#9b59b6"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "serif", Style: "italic", Weight: "semibold"},
				},
			},
			Options: RenderOptions{
				VisualOverlays: []*overlay.Overlay{
					overlay.NewShape("arcane-sigil", overlay.Hexagon,
						overlay.Position{X: overlay.Left, Y: overlay.Top},
						overlay.Size{Width: overlay.Pct(18), Height: overlay.Pct(18)},
						"#9b59b6", 0.25),
					overlay.NewSymbol("arcane-rune",
						overlay.Position{X: overlay.Px(12), Y: overlay.Px(12)},
						overlay.Size{Width: overlay.Px(48), Height: overlay.Px(48)},
						"#e0b0ff", 0.8, runeEmblem),
					overlay.NewIconSymbol("arcane-stars", "stars",
						overlay.Position{X: overlay.Inset(20, 32), Y: overlay.Px(20)},
						overlay.Size{Width: overlay.Px(32), Height: overlay.Px(32)},
						"#e0b0ff", 0.8),
				},
			},
			Metadata: Metadata{Description: "Violet sigils and starlight.", Tags: []string{"magic", "purple"}},
		},
		{
			ID:     Verdant,
			Name:   "Verdant",
			Colors: Colors{Gradient: "10, 40, 15", Border: "rgba(46, 139, 87, 0.85)", Accent: "#2e8b57"},
			Options: RenderOptions{
				VisualOverlays: append(corners("verdant", overlay.Organic, "#3cb371", 0.8),
					overlay.NewShape("verdant-seed", overlay.Circle,
						overlay.Position{X: overlay.Center, Y: overlay.Bottom},
						overlay.Size{Width: overlay.Px(10), Height: overlay.Px(10)},
						"#98fb98", 0.6),
				),
			},
			Metadata: Metadata{Description: "Leafy corners in forest green.", Tags: []string{"nature", "green"}},
		},
		{
			ID:     Inferno,
			Name:   "Inferno",
			Colors: Colors{Gradient: "50, 10, 0", Border: "rgba(255, 69, 0, 0.9)", Accent: "#ff4500"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Weight: "black", Transform: "uppercase", Style: "italic"},
				},
			},
			Options: RenderOptions{
				VisualOverlays: []*overlay.Overlay{
					screen(overlay.NewPattern("inferno-heat", overlay.Lines, 10, "#ff4500", 0.2)),
					overlay.NewIconSymbol("inferno-flame", "flame",
						overlay.Position{X: overlay.Px(20), Y: overlay.Px(20)},
						overlay.Size{Width: overlay.Px(40), Height: overlay.Px(40)},
						"#ff8c00", 0.9),
				},
			},
			Metadata: Metadata{Description: "Heat haze and a burning emblem.", Tags: []string{"fire", "bold"}},
		},
		{
			ID:     Marathon,
			Name:   "Marathon",
			Colors: Colors{Gradient: "0, 0, 0", Border: "rgba(200, 255, 0, 0.9)", Accent: "#c8ff00", Text: "#000000"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "condensed", Weight: "bold", Size: "3xl", Transform: "uppercase"},
					fonts.Body:  {Family: "condensed", Transform: "uppercase"},
					fonts.Small: {Family: "mono", Transform: "uppercase"},
					fonts.Tiny:  {Family: "mono", Transform: "uppercase"},
				},
			},
			Options: RenderOptions{
				Layout:             MarathonLayout{PadX: 12, PadY: 6},
				CustomTextPosition: true,
				LoadFonts: LoadFamily("Oswald",
					FontFile{fonts.Regular, "Oswald-Regular.ttf"},
					FontFile{fonts.Bold, "Oswald-Bold.ttf"}),
				VisualOverlays: []*overlay.Overlay{
					overlay.NewPattern("marathon-scanlines", overlay.Lines, 4, "#202020", 0.2),
				},
			},
			Metadata: Metadata{Description: "Race-bib label pinned top right.", Tags: []string{"sport", "bold"}},
		},
		{
			ID:     KillTeam,
			Name:   "Kill Team",
			Colors: Colors{Gradient: "35, 35, 35", Border: "rgba(255, 140, 0, 0.9)", Accent: "#ff8c00"},
			Fonts: &fonts.ThemeFonts{
				Overrides: map[fonts.Context]fonts.FontStyleConfig{
					fonts.Title: {Family: "condensed", Transform: "uppercase", Size: "3xl"},
					fonts.Small: {Transform: "uppercase", LetterSpacing: "wide"},
				},
			},
			Options: RenderOptions{
				Layout: KillTeamLayout{Padding: 16, Border: 4, Gap: 6},
				LoadFonts: LoadFamily("Oswald",
					FontFile{fonts.Regular, "Oswald-Regular.ttf"},
					FontFile{fonts.Bold, "Oswald-Bold.ttf"}),
				VisualOverlays: []*overlay.Overlay{
					overlay.NewIconSymbol("killteam-shield", "shield",
						overlay.Position{X: overlay.Px(16), Y: overlay.Px(16)},
						overlay.Size{Width: overlay.Px(36), Height: overlay.Px(36)},
						"#ff8c00", 0.9),
				},
			},
			Metadata: Metadata{Description: "Footer data band beneath the photo.", Tags: []string{"tactical"}},
		},
	}

	m := make(map[ID]*Theme, len(themes))
	for _, t := range themes {
		t.IsDefault = true
		m[t.ID] = t
	}
	return m
}

func corners(prefix string, style overlay.DecorationStyle, color string, opacity float64) []*overlay.Overlay {
	var out []*overlay.Overlay
	for _, c := range []overlay.Corner{overlay.TopLeft, overlay.TopRight, overlay.BottomLeft, overlay.BottomRight} {
		out = append(out, overlay.NewCornerDecoration(prefix+"-"+string(c), c, style, color, opacity))
	}
	return out
}

func screen(o *overlay.Overlay) *overlay.Overlay {
	o.BlendMode = canvas.Screen
	return o
}
