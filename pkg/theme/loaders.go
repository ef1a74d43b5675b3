package theme

import (
	"context"
	"log"

	"github.com/xob0t/hobbycard/pkg/fonts"
)

// FontFile is one face file of a family, relative to the fonts directory.
type FontFile struct {
	Variant fonts.Variant
	Path    string
}

// LoadFamily returns a loader registering files under family. Missing or
// unreadable files are logged and skipped: text then falls back to the
// bundled faces.
func LoadFamily(family string, files ...FontFile) FontLoader {
	return func(ctx context.Context, reg *fonts.Registry) error {
		if reg.Has(family) {
			return nil
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := reg.RegisterFile(family, f.Variant, f.Path); err != nil {
				log.Printf("warning: font %s: %v", family, err)
			}
		}
		return nil
	}
}

// LoadAll chains loaders, stopping at the first error.
func LoadAll(loaders ...FontLoader) FontLoader {
	return func(ctx context.Context, reg *fonts.Registry) error {
		for _, l := range loaders {
			if err := l(ctx, reg); err != nil {
				return err
			}
		}
		return nil
	}
}
