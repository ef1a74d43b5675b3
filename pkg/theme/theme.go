// Package theme defines card themes: colours, fonts and the rendering
// strategy that lays text out on the photo, plus the registry of built-in
// themes.
package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/overlay"
)

// ID identifies a theme.
type ID string

var (
	// ErrUnknownTheme is returned by Lookup for an unregistered id.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrReadOnly is returned when editing a built-in theme in place.
	ErrReadOnly = errors.New("built-in themes are read-only; duplicate the theme to edit it")
)

// Colors are a theme's palette. Gradient is an "r, g, b" triple used for the
// text backdrop; Border is any CSS colour.
type Colors struct {
	Gradient string `json:"gradient"`
	Border   string `json:"border"`
	Accent   string `json:"accent,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Metadata describes a theme for pickers.
type Metadata struct {
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Strategy lays text out on the card. Standard delegates to the layout
// engine; themes with bespoke compositing substitute their own.
type Strategy interface {
	Name() string
	RenderStandardLayout(rc *layout.RenderContext, t *Theme) float64
	RenderModelName(rc *layout.RenderContext, y float64, t *Theme)
}

// FontLoader registers the faces a theme needs before drawing starts.
type FontLoader func(ctx context.Context, reg *fonts.Registry) error

// Component is an extra theme-specific draw after the overlays.
type Component interface {
	Name() string
	Draw(rc *layout.RenderContext, t *Theme) error
}

// RenderOptions is a theme's behaviour.
type RenderOptions struct {
	Layout             Strategy
	CustomTextPosition bool
	LoadFonts          FontLoader
	VisualOverlays     []*overlay.Overlay
	CustomComponents   []Component
}

// Theme is a named bundle of colours, fonts and rendering behaviour.
type Theme struct {
	ID        ID
	Name      string
	Colors    Colors
	Fonts     *fonts.ThemeFonts
	Options   RenderOptions
	IsDefault bool
	Metadata  Metadata
}

// Strategy returns the theme's layout strategy, Standard when unset.
func (t *Theme) Strategy() Strategy {
	if t.Options.Layout == nil {
		return Standard{}
	}
	return t.Options.Layout
}

// LoadFonts runs the theme's font loader, if any.
func (t *Theme) LoadFonts(ctx context.Context, reg *fonts.Registry) error {
	if t.Options.LoadFonts == nil {
		return nil
	}
	if err := t.Options.LoadFonts(ctx, reg); err != nil {
		return fmt.Errorf("theme %s: load fonts: %w", t.ID, err)
	}
	return nil
}

// Overlay returns the overlay with id.
func (t *Theme) Overlay(id string) (*overlay.Overlay, bool) {
	for _, o := range t.Options.VisualOverlays {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of t. Strategies, loaders and components are
// shared; they hold no per-theme state.
func (t *Theme) Clone() *Theme {
	cp := *t
	cp.Fonts = t.Fonts.Clone()
	cp.Metadata.Tags = append([]string(nil), t.Metadata.Tags...)
	cp.Options.CustomComponents = append([]Component(nil), t.Options.CustomComponents...)
	cp.Options.VisualOverlays = make([]*overlay.Overlay, len(t.Options.VisualOverlays))
	for i, o := range t.Options.VisualOverlays {
		cp.Options.VisualOverlays[i] = o.Clone()
	}
	return &cp
}

// Duplicate returns an editable copy of t with a fresh id.
func (t *Theme) Duplicate() *Theme {
	cp := t.Clone()
	cp.ID = ID(uuid.NewString())
	cp.Name = t.Name + " (copy)"
	cp.IsDefault = false
	return cp
}

// Info is the JSON view of a theme.
type Info struct {
	ID                 ID                 `json:"id"`
	Name               string             `json:"name"`
	Colors             Colors             `json:"colors"`
	Fonts              *fonts.ThemeFonts  `json:"fonts,omitempty"`
	IsDefault          bool               `json:"isDefault"`
	Strategy           string             `json:"strategy"`
	CustomTextPosition bool               `json:"customTextPosition"`
	Overlays           []*overlay.Overlay `json:"visualOverlays,omitempty"`
	Components         []string           `json:"customComponents,omitempty"`
	Metadata           Metadata           `json:"metadata"`
}

// Info describes t for the editor API.
func (t *Theme) Info() Info {
	info := Info{
		ID:                 t.ID,
		Name:               t.Name,
		Colors:             t.Colors,
		Fonts:              t.Fonts,
		IsDefault:          t.IsDefault,
		Strategy:           t.Strategy().Name(),
		CustomTextPosition: t.Options.CustomTextPosition,
		Overlays:           t.Options.VisualOverlays,
		Metadata:           t.Metadata,
	}
	for _, c := range t.Options.CustomComponents {
		info.Components = append(info.Components, c.Name())
	}
	return info
}
