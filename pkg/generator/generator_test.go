package generator

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func card() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if x >= 16 || y >= 16 {
				img.SetNRGBA(x, y, color.NRGBA{200, 40, 40, 255})
			}
		}
	}
	return img
}

func TestGenerateToWriter(t *testing.T) {
	tests := []struct {
		ext    string
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{".png", func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{".PNG", func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{".jpg", func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) }},
		{".jpeg", func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) }},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := GenerateToWriter(&buf, tt.ext, Config{Image: card()}); err != nil {
				t.Fatal(err)
			}
			img, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
				t.Errorf("bounds = %v", b)
			}
		})
	}
}

func TestJPEGFlattensOntoBackground(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateToWriter(&buf, ".jpg", Config{Image: card(), Background: "#ffffff", Quality: 100}); err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 < 150 || g>>8 < 150 || b>>8 < 150 {
		t.Errorf("transparent pixel = %d,%d,%d; want near white", r>>8, g>>8, b>>8)
	}
}

func TestGenerateErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateToWriter(&buf, ".png", Config{}); err == nil {
		t.Error("expected error without an image")
	}
	if err := GenerateToWriter(&buf, ".avi", Config{Image: card()}); err == nil {
		t.Error("expected error for unsupported format")
	}

	out := filepath.Join(t.TempDir(), "card.gif")
	if err := Generate(out, Config{Image: card()}); err == nil {
		t.Error("expected error for .gif")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed export left a file behind")
	}
}

func TestGenerateFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "card.png")
	if err := Generate(out, Config{Image: card()}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(".JPG"); got != "image/jpeg" {
		t.Errorf("ContentType(.JPG) = %q", got)
	}
	if got := ContentType(".png"); got != "image/png" {
		t.Errorf("ContentType(.png) = %q", got)
	}
}
