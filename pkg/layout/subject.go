// Package layout implements the standard card text layout: up to four
// contextual lines (identity or result, date, collection, game) stacked from
// an anchor corner inward, followed by the model name.
package layout

import (
	"strings"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/canvas"
)

// Game is a game system a model or collection belongs to.
type Game struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Box is a collection of models.
type Box struct {
	Name string `json:"name"`
	Game *Game  `json:"game,omitempty"`
}

// Subject is the model or battle record being rendered. A battle has a
// result and no box; a model may have a box.
type Subject struct {
	Name         string  `json:"name"`
	ImageURL     string  `json:"image_url"`
	PaintedDate  string  `json:"painted_date,omitempty"`
	Box          *Box    `json:"box,omitempty"`
	Game         *Game   `json:"game,omitempty"`
	BattleResult *string `json:"battle_result,omitempty"`
	OpponentName string  `json:"opponent_name,omitempty"`
}

// IsBattle reports whether s is a battle record.
func (s *Subject) IsBattle() bool {
	return s.Box == nil && s.BattleResult != nil
}

// GameInfo returns the collection's game, falling back to the subject's own.
func (s *Subject) GameInfo() *Game {
	if s.Box != nil && s.Box.Game != nil {
		return s.Box.Game
	}
	return s.Game
}

// Anchor is the corner text is aligned against.
type Anchor string

const (
	BottomRight Anchor = "bottom-right"
	BottomLeft  Anchor = "bottom-left"
	TopRight    Anchor = "top-right"
	TopLeft     Anchor = "top-left"
)

// ParseAnchor returns the anchor named s, defaulting to bottom-right.
func ParseAnchor(s string) Anchor {
	switch a := Anchor(strings.ToLower(strings.TrimSpace(s))); a {
	case BottomLeft, TopRight, TopLeft:
		return a
	default:
		return BottomRight
	}
}

// Right reports whether the anchor is on the right edge.
func (a Anchor) Right() bool { return a == BottomRight || a == TopRight || a == "" }

// Bottom reports whether the anchor is on the bottom edge.
func (a Anchor) Bottom() bool { return a == BottomRight || a == BottomLeft || a == "" }

// RenderContext carries everything one render call needs.
type RenderContext struct {
	Canvas  *canvas.Context
	Subject *Subject

	UserPublicName string
	UserMetaName   string

	ShadowOpacity   float64
	Anchor          Anchor
	ShowPaintedDate bool
	ShowCollection  bool
	ShowGameDetails bool
	DarkText        bool

	// ShareURL, when set, is encoded by share-badge components.
	ShareURL string

	// Loader fetches game icons; nil skips icons.
	Loader assets.Loader
	// Enhancer receives best-effort draws such as icons; nil skips them.
	Enhancer *Enhancer
}

// Width returns the canvas width in pixels.
func (rc *RenderContext) Width() float64 { return float64(rc.Canvas.Width()) }

// Height returns the canvas height in pixels.
func (rc *RenderContext) Height() float64 { return float64(rc.Canvas.Height()) }
