package theme

import (
	"fmt"
	"strings"

	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
)

// OverlayPatch edits one overlay. Nil fields are left alone.
type OverlayPatch struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *string  `json:"color,omitempty"`
}

// Patch is an edit from the theme editor. Empty fields are left alone.
type Patch struct {
	Name          string                                  `json:"name,omitempty"`
	Colors        Colors                                  `json:"colors"`
	FontOverrides map[fonts.Context]fonts.FontStyleConfig `json:"fontOverrides,omitempty"`
	Overlays      map[string]OverlayPatch                 `json:"overlays,omitempty"`
}

// Apply edits t in place. Built-in themes must be duplicated first.
func (t *Theme) Apply(p Patch) error {
	if t.IsDefault {
		return ErrReadOnly
	}
	if err := p.validate(t); err != nil {
		return err
	}

	if name := strings.TrimSpace(p.Name); name != "" {
		t.Name = name
	}
	mergeColors(&t.Colors, p.Colors)

	if len(p.FontOverrides) > 0 {
		if t.Fonts == nil {
			t.Fonts = &fonts.ThemeFonts{}
		}
		for ctx, cfg := range p.FontOverrides {
			t.Fonts.SetOverride(ctx, cfg)
		}
	}

	for id, op := range p.Overlays {
		o, _ := t.Overlay(id)
		if op.Enabled != nil {
			o.Enabled = *op.Enabled
		}
		if op.Opacity != nil {
			o.Opacity = *op.Opacity
		}
		if op.Color != nil {
			o.Color = *op.Color
		}
	}
	return nil
}

func (p Patch) validate(t *Theme) error {
	for _, c := range []string{p.Colors.Border, p.Colors.Accent, p.Colors.Text} {
		if c == "" {
			continue
		}
		if _, err := canvas.ParseColor(c); err != nil {
			return fmt.Errorf("patch: %w", err)
		}
	}
	if p.Colors.Gradient != "" {
		if _, err := canvas.ParseColor(p.Colors.Gradient); err != nil {
			return fmt.Errorf("patch: gradient must be an \"r, g, b\" triple: %w", err)
		}
	}
	for ctx := range p.FontOverrides {
		if !knownContext(ctx) {
			return fmt.Errorf("patch: unknown font context %q", ctx)
		}
	}
	for id, op := range p.Overlays {
		if _, ok := t.Overlay(id); !ok {
			return fmt.Errorf("patch: theme %s has no overlay %q", t.ID, id)
		}
		if op.Opacity != nil && (*op.Opacity < 0 || *op.Opacity > 1) {
			return fmt.Errorf("patch: overlay %q opacity %v out of range", id, *op.Opacity)
		}
		if op.Color != nil {
			if _, err := canvas.ParseColor(*op.Color); err != nil {
				return fmt.Errorf("patch: overlay %q: %w", id, err)
			}
		}
	}
	return nil
}

func knownContext(ctx fonts.Context) bool {
	for _, c := range fonts.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

func mergeColors(dst *Colors, src Colors) {
	if src.Gradient != "" {
		dst.Gradient = src.Gradient
	}
	if src.Border != "" {
		dst.Border = src.Border
	}
	if src.Accent != "" {
		dst.Accent = src.Accent
	}
	if src.Text != "" {
		dst.Text = src.Text
	}
}
