package canvas

import (
	"image"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#1a2b3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}},
		{"#1a2b3c80", color.NRGBA{0x1a, 0x2b, 0x3c, 0x80}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}},
		{"rgba(255, 215, 0, 0.5)", color.NRGBA{255, 215, 0, 128}},
		{"139, 0, 0", color.NRGBA{139, 0, 0, 255}},
		{"  Gold ", color.NRGBA{255, 215, 0, 255}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#gggggg", "rgb(1, 2)", "rgba(1, 2, 3, x)", "chartreuse-ish"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
	if got := MustColor("nope"); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("MustColor fallback = %v, want white", got)
	}
}

func TestRGBAString(t *testing.T) {
	if got := RGBA(color.NRGBA{1, 2, 3, 255}); got != "rgba(1, 2, 3, 1)" {
		t.Errorf("RGBA = %q", got)
	}
	if got := RGBA(WithAlpha(color.NRGBA{1, 2, 3, 255}, 0)); got != "rgba(1, 2, 3, 0)" {
		t.Errorf("RGBA = %q", got)
	}
}

func pixel(c *Context, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func nearRGBA(a, b color.RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestFillRect(t *testing.T) {
	c := New(40, 40)
	c.FillStyle = Solid{255, 0, 0, 255}
	c.FillRect(10, 10, 20, 20)

	if got := pixel(c, 15, 15); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v", got)
	}
	if got := pixel(c, 5, 5); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestCompositeOps(t *testing.T) {
	red := Solid{255, 0, 0, 255}
	tests := []struct {
		name  string
		op    CompositeOp
		alpha float64
		base  color.NRGBA
		want  color.RGBA
	}{
		{"source-over", SourceOver, 1, color.NRGBA{0, 0, 255, 255}, color.RGBA{255, 0, 0, 255}},
		{"half-alpha", SourceOver, 0.5, color.NRGBA{255, 255, 255, 255}, color.RGBA{255, 128, 128, 255}},
		{"multiply", Multiply, 1, color.NRGBA{0, 0, 255, 255}, color.RGBA{0, 0, 0, 255}},
		{"multiply-white", Multiply, 1, color.NRGBA{255, 255, 255, 255}, color.RGBA{255, 0, 0, 255}},
		{"screen", Screen, 1, color.NRGBA{0, 0, 255, 255}, color.RGBA{255, 0, 255, 255}},
		{"destination-over", DestinationOver, 1, color.NRGBA{0, 0, 255, 255}, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(10, 10)
			c.FillStyle = Solid(tt.base)
			c.FillRect(0, 0, 10, 10)

			c.GlobalAlpha = tt.alpha
			c.GlobalCompositeOperation = tt.op
			c.FillStyle = red
			c.FillRect(0, 0, 10, 10)

			if got := pixel(c, 5, 5); !nearRGBA(got, tt.want) {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDestinationOverFillsTransparent(t *testing.T) {
	c := New(10, 10)
	c.GlobalCompositeOperation = DestinationOver
	c.FillStyle = Solid{0, 255, 0, 255}
	c.FillRect(0, 0, 10, 10)
	if got := pixel(c, 5, 5); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestShadow(t *testing.T) {
	c := New(40, 40)
	c.SetShadow(color.NRGBA{0, 0, 0, 255}, 0, 10, 10)
	c.FillStyle = Solid{255, 255, 255, 255}
	c.FillRect(5, 5, 10, 10)

	if got := pixel(c, 20, 20); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("shadow pixel = %v, want opaque black", got)
	}
	if got := pixel(c, 8, 8); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("shape pixel = %v, want white over shadow", got)
	}

	c.ResetShadow()
	c.FillRect(25, 5, 5, 5)
	if got := pixel(c, 37, 17); got.A != 0 {
		t.Errorf("reset shadow still drew: %v", got)
	}
}

func TestBlurredShadowSpreads(t *testing.T) {
	c := New(60, 60)
	c.SetShadow(color.NRGBA{0, 0, 0, 255}, 8, 0, 0)
	c.FillStyle = Solid{255, 255, 255, 255}
	c.FillRect(20, 20, 20, 20)

	if got := pixel(c, 18, 30); got.A == 0 {
		t.Error("blurred shadow should spread outside the shape")
	}
	if got := pixel(c, 2, 2); got.A != 0 {
		t.Errorf("far pixel = %v, want untouched", got)
	}
}

func TestScopedRestoresState(t *testing.T) {
	c := New(10, 10)
	c.Scoped(func() {
		c.GlobalAlpha = 0.3
		c.GlobalCompositeOperation = Multiply
		c.SetShadow(color.NRGBA{0, 0, 0, 200}, 4, 1, 1)
	})
	if !c.DefaultState() {
		t.Errorf("state after Scoped: alpha=%v op=%v shadow=%v", c.GlobalAlpha, c.GlobalCompositeOperation, c.ShadowColor)
	}
}

func TestGrowKeepsPixels(t *testing.T) {
	c := New(10, 10)
	c.FillStyle = Solid{1, 2, 3, 255}
	c.FillRect(0, 0, 10, 10)
	c.GlobalAlpha = 0.5

	c.Grow(10, 30)
	if c.Width() != 10 || c.Height() != 30 {
		t.Fatalf("size = %dx%d", c.Width(), c.Height())
	}
	if got := pixel(c, 5, 5); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("kept pixel = %v", got)
	}
	if got := pixel(c, 5, 20); got.A != 0 {
		t.Errorf("new area = %v, want transparent", got)
	}
	if c.GlobalAlpha != 0.5 {
		t.Error("Grow should keep drawing state")
	}

	c.Resize(4, 4)
	if c.Width() != 4 || pixel(c, 1, 1).A != 0 || c.GlobalAlpha != 1 {
		t.Error("Resize should clear pixels and reset state")
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(1, color.NRGBA{255, 255, 255, 255})
	g.AddColorStop(0, color.NRGBA{0, 0, 0, 255})

	if got := g.ColorAt(-5, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("before start = %v", got)
	}
	if got := g.ColorAt(50, 40); !near(got.R, 128) {
		t.Errorf("midpoint = %v", got)
	}
	if got := g.ColorAt(150, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("after end = %v", got)
	}
	if got := (&LinearGradient{}).ColorAt(0, 0); got.A != 0 {
		t.Errorf("empty gradient = %v", got)
	}
}

func TestStrokeAndCircle(t *testing.T) {
	c := New(50, 50)
	c.StrokeStyle = Solid{0, 0, 0, 255}
	c.LineWidth = 4
	c.Stroke(NewPath().MoveTo(5, 25).LineTo(45, 25))
	if got := pixel(c, 25, 25); got.A != 255 {
		t.Errorf("stroke centre = %v", got)
	}
	if got := pixel(c, 25, 35); got.A != 0 {
		t.Errorf("off stroke = %v", got)
	}

	c.Clear()
	c.FillStyle = Solid{0, 0, 0, 255}
	c.Fill(NewPath().Circle(25, 25, 10))
	if pixel(c, 25, 25).A != 255 || pixel(c, 25, 5).A != 0 {
		t.Error("circle fill coverage wrong")
	}
}

func TestDrawImageScales(t *testing.T) {
	src := NewSolidImage(4, 4, color.RGBA{0, 128, 0, 255})
	c := New(20, 20)
	c.DrawImage(src, 2, 2, 10, 10)

	if got := pixel(c, 7, 7); !nearRGBA(got, color.RGBA{0, 128, 0, 255}) {
		t.Errorf("scaled pixel = %v", got)
	}
	if got := pixel(c, 15, 15); got.A != 0 {
		t.Errorf("outside image = %v", got)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(3, 3, 13, 8))
	src.Set(3, 3, color.RGBA{9, 9, 9, 255})
	c := FromImage(src, nil)
	if c.Width() != 10 || c.Height() != 5 {
		t.Fatalf("size = %dx%d", c.Width(), c.Height())
	}
	if got := pixel(c, 0, 0); got != (color.RGBA{9, 9, 9, 255}) {
		t.Errorf("origin pixel = %v", got)
	}
}

func TestText(t *testing.T) {
	c := New(200, 60)
	if err := c.SetFont("bold 24px sans-serif"); err != nil {
		t.Fatalf("SetFont: %v", err)
	}
	if err := c.SetFont("24 sans-serif"); err == nil {
		t.Error("SetFont should reject a font without px size")
	}
	if c.Font() != "bold 24px sans-serif" {
		t.Errorf("failed SetFont changed the font to %q", c.Font())
	}

	short, long := c.MeasureText("Hi"), c.MeasureText("Hi there")
	if short.Width <= 0 || long.Width <= short.Width {
		t.Errorf("widths: %v, %v", short.Width, long.Width)
	}
	if short.ActualBoundingBoxAscent <= 0 || short.Height() <= 0 {
		t.Errorf("metrics = %+v", short)
	}
	if empty := c.MeasureText(""); empty.Width != 0 || empty.ActualBoundingBoxAscent != 0 {
		t.Errorf("empty metrics = %+v", empty)
	}

	c.FillStyle = Solid{255, 255, 255, 255}
	c.TextAlign = AlignRight
	c.TextBaseline = BaselineBottom
	c.FillText("Hi", 190, 55)

	drawn := opaqueBounds(alphaOf(c.Image()))
	if drawn.Empty() {
		t.Fatal("FillText drew nothing")
	}
	if drawn.Max.X > 192 || drawn.Min.X < 190-int(short.Width)-2 {
		t.Errorf("right-aligned text bounds = %v", drawn)
	}
	if drawn.Max.Y > 56 {
		t.Errorf("bottom-baseline text bounds = %v", drawn)
	}
}

func alphaOf(img *image.RGBA) *image.Alpha {
	out := image.NewAlpha(img.Bounds())
	for i := 0; i < len(out.Pix); i++ {
		out.Pix[i] = img.Pix[i*4+3]
	}
	return out
}
