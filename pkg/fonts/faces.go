// faces.go — Font face management with per-family TTF registration and the
// bundled Go fonts as fallback. Uses golang.org/x/image/font/opentype at 72 DPI,
// so a font size in points equals its size in canvas pixels.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/opentype"
)

// Variant is a weight/style combination within a family.
type Variant int

const (
	Regular Variant = iota
	Medium
	Bold
	Italic
	MediumItalic
	BoldItalic
)

// VariantFor picks the variant closest to a CSS weight and style.
func VariantFor(weight int, style string) Variant {
	italic := style == "italic"
	switch {
	case weight >= 600 && italic:
		return BoldItalic
	case weight >= 600:
		return Bold
	case weight >= 500 && italic:
		return MediumItalic
	case weight >= 500:
		return Medium
	case italic:
		return Italic
	default:
		return Regular
	}
}

// fallbacks lists which variants to try, in order, when v is missing.
func (v Variant) fallbacks() []Variant {
	switch v {
	case Medium:
		return []Variant{Medium, Bold, Regular}
	case Bold:
		return []Variant{Bold, Medium, Regular}
	case Italic:
		return []Variant{Italic, Regular}
	case MediumItalic:
		return []Variant{MediumItalic, BoldItalic, Italic, Medium, Regular}
	case BoldItalic:
		return []Variant{BoldItalic, Bold, Italic, Regular}
	default:
		return []Variant{Regular, Medium, Bold}
	}
}

const (
	goSans      = "go"
	goMono      = "go mono"
	goSmallCaps = "go smallcaps"
)

var monospaceNames = map[string]bool{
	"monospace": true, "menlo": true, "monaco": true, "consolas": true,
	"courier": true, "courier new": true, "jetbrains mono": true,
}

// Registry maps family names to parsed fonts. It is safe for concurrent use;
// faces are not, so each render takes its own FaceCache.
type Registry struct {
	mu        sync.RWMutex
	families  map[string]map[Variant]*opentype.Font
	searchDir string
}

// NewRegistry creates a registry pre-loaded with the bundled Go fonts.
func NewRegistry() (*Registry, error) {
	r := &Registry{families: make(map[string]map[Variant]*opentype.Font)}

	bundled := []struct {
		family  string
		variant Variant
		data    []byte
	}{
		{goSans, Regular, goregular.TTF},
		{goSans, Medium, gomedium.TTF},
		{goSans, Bold, gobold.TTF},
		{goSans, Italic, goitalic.TTF},
		{goSans, MediumItalic, gomediumitalic.TTF},
		{goSans, BoldItalic, gobolditalic.TTF},
		{goMono, Regular, gomono.TTF},
		{goMono, Bold, gomonobold.TTF},
		{goMono, Italic, gomonoitalic.TTF},
		{goMono, BoldItalic, gomonobolditalic.TTF},
		{goSmallCaps, Regular, gosmallcaps.TTF},
		{goSmallCaps, Italic, gosmallcapsitalic.TTF},
	}
	for _, b := range bundled {
		if err := r.RegisterTTF(b.family, b.variant, b.data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the shared registry holding only the bundled fonts plus
// whatever themes have registered into it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = NewRegistry()
	})
	if defaultErr != nil {
		// The bundled fonts are compiled in; failing to parse them is a build defect.
		panic(fmt.Sprintf("fonts: bundled fonts: %v", defaultErr))
	}
	return defaultReg
}

// SetSearchDir sets the directory relative font paths are resolved against.
func (r *Registry) SetSearchDir(dir string) {
	r.mu.Lock()
	r.searchDir = dir
	r.mu.Unlock()
}

// SearchDir returns the directory relative font paths are resolved against.
func (r *Registry) SearchDir() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.searchDir
}

// RegisterTTF parses data and registers it as family/variant.
func (r *Registry) RegisterTTF(family string, v Variant, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", family, err)
	}
	key := strings.ToLower(family)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.families[key] == nil {
		r.families[key] = make(map[Variant]*opentype.Font)
	}
	r.families[key][v] = parsed
	return nil
}

// RegisterFile loads a TTF/OTF file and registers it. Relative paths are
// resolved against the search directory.
func (r *Registry) RegisterFile(family string, v Variant, path string) error {
	if !filepath.IsAbs(path) {
		if dir := r.SearchDir(); dir != "" {
			path = filepath.Join(dir, path)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return r.RegisterTTF(family, v, data)
}

// Has reports whether family has at least one registered variant.
func (r *Registry) Has(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.families[strings.ToLower(family)]) > 0
}

// Resolve picks the best registered font for a parsed CSS font, walking the
// family stack and falling back to the Go fonts.
func (r *Registry) Resolve(f CSSFont) *opentype.Font {
	v := VariantFor(f.Weight, f.Style)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fam := range f.Families {
		key := strings.ToLower(fam)
		if variants, ok := r.families[key]; ok {
			if parsed := pickVariant(variants, v); parsed != nil {
				return parsed
			}
		}
		if monospaceNames[key] {
			return pickVariant(r.families[goMono], v)
		}
	}
	return pickVariant(r.families[goSans], v)
}

func pickVariant(variants map[Variant]*opentype.Font, v Variant) *opentype.Font {
	for _, cand := range v.fallbacks() {
		if parsed, ok := variants[cand]; ok {
			return parsed
		}
	}
	for _, parsed := range variants {
		return parsed
	}
	return nil
}

// NewCache returns a face cache bound to this registry.
func (r *Registry) NewCache() *FaceCache {
	return &FaceCache{reg: r, faces: make(map[string]font.Face)}
}

// FaceCache creates and memoises faces for canvas font strings. Not safe for
// concurrent use.
type FaceCache struct {
	reg   *Registry
	faces map[string]font.Face
}

// Face returns the face for a canvas font string.
func (c *FaceCache) Face(css string) (font.Face, error) {
	if face, ok := c.faces[css]; ok {
		return face, nil
	}
	parsed, err := ParseCSSFont(css)
	if err != nil {
		return nil, err
	}
	otf := c.reg.Resolve(parsed)
	if otf == nil {
		return nil, fmt.Errorf("no font available for %q", css)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    parsed.SizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	c.faces[css] = face
	return face, nil
}
