package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestVariantFor(t *testing.T) {
	tests := []struct {
		weight int
		style  string
		want   Variant
	}{
		{400, "normal", Regular},
		{500, "normal", Medium},
		{700, "normal", Bold},
		{400, "italic", Italic},
		{500, "italic", MediumItalic},
		{900, "italic", BoldItalic},
	}
	for _, tt := range tests {
		if got := VariantFor(tt.weight, tt.style); got != tt.want {
			t.Errorf("VariantFor(%d, %q) = %v, want %v", tt.weight, tt.style, got, tt.want)
		}
	}
}

func TestRegistryResolve(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if r.Resolve(CSSFont{Weight: 400, Families: []string{"Nonexistent"}}) == nil {
		t.Fatal("unknown family should fall back to the bundled sans")
	}

	mono := r.Resolve(CSSFont{Weight: 400, Families: []string{"JetBrains Mono", "monospace"}})
	if mono != r.families[goMono][Regular] {
		t.Error("monospace stack should resolve to go mono")
	}

	if err := r.RegisterTTF("Cinzel", Regular, gomono.TTF); err != nil {
		t.Fatalf("RegisterTTF: %v", err)
	}
	if !r.Has("cinzel") {
		t.Error("family lookup should be case-insensitive")
	}
	if got := r.Resolve(CSSFont{Weight: 700, Families: []string{"Cinzel"}}); got != r.families["cinzel"][Regular] {
		t.Error("bold request should fall back to the only registered variant")
	}
}

func TestRegistryRegisterFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	r.SetSearchDir(dir)
	if err := r.RegisterFile("Plate", Regular, "mono.ttf"); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if !r.Has("Plate") {
		t.Error("registered family not found")
	}
	if err := r.RegisterFile("Missing", Regular, "missing.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
	if err := r.RegisterTTF("Broken", Regular, []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
}

func TestFaceCache(t *testing.T) {
	c := Default().NewCache()
	f1, err := c.Face("bold 24px sans-serif")
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	f2, _ := c.Face("bold 24px sans-serif")
	if f1 != f2 {
		t.Error("faces should be memoised per font string")
	}
	if got := f1.Metrics().Height.Ceil(); got < 24 {
		t.Errorf("24px face height = %d, want >= 24", got)
	}
	if _, err := c.Face("bold"); err == nil {
		t.Error("expected error for font without size")
	}
}
