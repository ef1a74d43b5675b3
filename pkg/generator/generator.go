// Package generator exports rendered cards as image files.
//
// All output follows a unified pipeline: take the finished card image, flatten
// it when the format has no alpha channel, then encode it.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// Config holds export parameters.
type Config struct {
	Image      image.Image // Rendered card (required)
	Quality    int         // JPEG quality 1-100 (default: 90)
	Background string      // Fill behind transparent pixels for JPEG (default: "#000000")
}

// Generate writes the card to output. The format is inferred from the file extension:
//   - ".png" → PNG image
//   - ".jpg", ".jpeg" → JPEG image
func Generate(output string, cfg Config) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := GenerateToWriter(f, filepath.Ext(output), cfg); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	return f.Close()
}

// GenerateToWriter writes the card to an io.Writer. The format is specified by ext.
// This is useful for in-memory generation (e.g., HTTP responses, WASM).
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	if cfg.Image == nil {
		return fmt.Errorf("generate: no image")
	}

	switch ext = strings.ToLower(ext); ext {
	case ".png":
		if err := imaging.Encode(w, cfg.Image, imaging.PNG); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case ".jpg", ".jpeg":
		bg, err := canvas.ParseColor(cfg.Background)
		if cfg.Background == "" || err != nil {
			bg = color.NRGBA{A: 255}
		}
		quality := cfg.Quality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := imaging.Encode(w, flatten(cfg.Image, bg), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use .png or .jpg", ext)
	}
	return nil
}

// ContentType returns the MIME type for ext.
func ContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// flatten composites img over an opaque background.
func flatten(img image.Image, bg color.NRGBA) *image.RGBA {
	bg.A = 255
	b := img.Bounds()
	out := canvas.NewSolidImage(b.Dx(), b.Dy(), bg)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
