package layout

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
)

func str(s string) *string { return &s }

func battle(result, opponent string) *Subject {
	return &Subject{Name: "Skirmish", BattleResult: str(result), OpponentName: opponent}
}

func TestIdentityLine(t *testing.T) {
	tests := []struct {
		name    string
		subject *Subject
		public  string
		meta    string
		want    string
		wantOK  bool
	}{
		{"win uses public name", battle("I Won!", ""), "Ada", "Grim", "Ada won", true},
		{"win falls back to meta name", battle("win", ""), " ", "Grim", "Grim won", true},
		{"win without any name", battle("Victory: I won", ""), "", "", "I won", true},
		{"draw ignores names", battle("Draw", "Bob"), "Ada", "", "Draw", true},
		{"tie", battle("tie game", ""), "Ada", "", "Draw", true},
		{"loss to opponent", battle("Loss", "Bob"), "Ada", "", "Bob won", true},
		{"loss without opponent", battle("Loss", "  "), "Ada", "", "Loss", true},
		{"blank result is not a battle line", battle("  ", "Bob"), "Ada", "", "by Ada", true},
		{"battle with box is a model", &Subject{Box: &Box{Name: "Army"}, BattleResult: str("I won")}, "Ada", "", "by Ada", true},
		{"model public name", &Subject{Name: "Captain"}, " Ada ", "Grim", "by Ada", true},
		{"model blank public uses meta", &Subject{Name: "Captain"}, "", "Grim", "by Grim", true},
		{"model no names", &Subject{Name: "Captain"}, "  ", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &RenderContext{Subject: tt.subject, UserPublicName: tt.public, UserMetaName: tt.meta}
			got, ok := IdentityLine(rc)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("IdentityLine = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDateLine(t *testing.T) {
	rc := &RenderContext{Subject: &Subject{PaintedDate: "2024-03-05"}, ShowPaintedDate: true}
	if got, _ := DateLine(rc); got != "Painted March 5, 2024" {
		t.Errorf("model date = %q", got)
	}

	rc.Subject = battle("Loss", "")
	rc.Subject.PaintedDate = "2023-11-20T18:30:00Z"
	if got, _ := DateLine(rc); got != "Played on November 20, 2023" {
		t.Errorf("battle date = %q", got)
	}

	rc.Subject.PaintedDate = "last week"
	if got, ok := DateLine(rc); !ok || got != "Played on last week" {
		t.Errorf("unparsed date = %q, %v", got, ok)
	}

	rc.ShowPaintedDate = false
	if _, ok := DateLine(rc); ok {
		t.Error("date shown with toggle off")
	}
	rc.ShowPaintedDate = true
	rc.Subject.PaintedDate = ""
	if _, ok := DateLine(rc); ok {
		t.Error("date shown without a date")
	}
}

func TestCollectionAndGameLines(t *testing.T) {
	s := &Subject{
		Box:  &Box{Name: "Strike Force", Game: &Game{Name: "Warhammer 40,000", Icon: "icon.png"}},
		Game: &Game{Name: "Other"},
	}
	rc := &RenderContext{Subject: s, ShowCollection: true, ShowGameDetails: true}

	if got, ok := CollectionLine(rc); !ok || got != "Strike Force" {
		t.Errorf("collection = %q, %v", got, ok)
	}
	if name, icon, ok := GameLine(rc); !ok || name != "Warhammer 40,000" || icon != "icon.png" {
		t.Errorf("game = %q, %q, %v", name, icon, ok)
	}

	s.Box = nil
	if _, ok := CollectionLine(rc); ok {
		t.Error("collection without box")
	}
	if name, _, _ := GameLine(rc); name != "Other" {
		t.Errorf("fallback game = %q", name)
	}

	rc.ShowGameDetails = false
	if _, _, ok := GameLine(rc); ok {
		t.Error("game shown with toggle off")
	}
}

func fullContext(c *canvas.Context) *RenderContext {
	return &RenderContext{
		Canvas: c,
		Subject: &Subject{
			Name:        "Primaris Captain",
			PaintedDate: "2024-01-15",
			Box:         &Box{Name: "Ultramarines", Game: &Game{Name: "Warhammer 40,000", Icon: "icon://40k"}},
		},
		UserPublicName:  "Ada",
		ShadowOpacity:   0.8,
		Anchor:          BottomRight,
		ShowPaintedDate: true,
		ShowCollection:  true,
		ShowGameDetails: true,
	}
}

func TestPlanLines(t *testing.T) {
	rc := fullContext(canvas.New(400, 300))
	tf := &fonts.ThemeFonts{Overrides: map[fonts.Context]fonts.FontStyleConfig{
		fonts.Small: {Transform: "uppercase"},
	}}

	before := append([]byte(nil), rc.Canvas.Image().Pix...)
	lines := PlanLines(rc, tf)
	if string(before) != string(rc.Canvas.Image().Pix) {
		t.Error("measure pass drew on the canvas")
	}

	wantKinds := []LineKind{LineIdentity, LineDate, LineCollection, LineGame}
	if len(lines) != len(wantKinds) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantKinds))
	}
	for i, k := range wantKinds {
		if lines[i].Kind != k {
			t.Errorf("line %d kind = %s, want %s", i, lines[i].Kind, k)
		}
		if lines[i].Metrics.Width <= 0 {
			t.Errorf("line %d not measured", i)
		}
	}
	if lines[2].Text != "ULTRAMARINES" {
		t.Errorf("collection text = %q, want transformed", lines[2].Text)
	}
	if lines[0].Slot != fonts.SlotTiny || lines[2].Slot != fonts.SlotSmall || lines[3].Slot != fonts.SlotBody {
		t.Error("lines use the wrong font slots")
	}
	if lines[3].Icon != "icon://40k" || lines[3].Width() <= lines[3].Metrics.Width {
		t.Error("game line should carry its icon")
	}
	if rc.Canvas.Font() != canvas.DefaultFont {
		t.Errorf("measure pass left font %q", rc.Canvas.Font())
	}
}

func TestPlanLinesOmitsMissingIdentity(t *testing.T) {
	rc := fullContext(canvas.New(200, 200))
	rc.UserPublicName = ""
	for _, ln := range PlanLines(rc, nil) {
		if ln.Kind == LineIdentity {
			t.Fatal("identity line planned without a name")
		}
	}
}

func drawnBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	out := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				out = out.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return out
}

func TestRenderStandardTextLayoutAnchors(t *testing.T) {
	tests := []struct {
		anchor Anchor
		check  func(t *testing.T, b image.Rectangle, y float64)
	}{
		{BottomRight, func(t *testing.T, b image.Rectangle, y float64) {
			if b.Min.X < 150 || b.Max.Y < 250 || y >= 280 {
				t.Errorf("bounds %v, next y %v", b, y)
			}
		}},
		{TopLeft, func(t *testing.T, b image.Rectangle, y float64) {
			if b.Max.X > 250 || b.Min.Y > 40 || y <= 20 {
				t.Errorf("bounds %v, next y %v", b, y)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			rc := fullContext(canvas.New(400, 300))
			rc.Anchor = tt.anchor
			y := RenderStandardTextLayout(rc, nil)
			if !rc.Canvas.DefaultState() {
				t.Error("layout left shadow or compositing state behind")
			}
			tt.check(t, drawnBounds(rc.Canvas.Image()), y)
		})
	}
}

func TestRenderStandardTextLayoutAdvances(t *testing.T) {
	rc := fullContext(canvas.New(400, 300))
	y := RenderStandardTextLayout(rc, nil)
	want := 300.0 - Margin - 2*AdvanceTiny - AdvanceSmall - AdvanceBody - TitleGap
	if y != want {
		t.Errorf("next y = %v, want %v", y, want)
	}

	rc = fullContext(canvas.New(400, 300))
	rc.UserPublicName = ""
	rc.ShowPaintedDate, rc.ShowCollection, rc.ShowGameDetails = false, false, false
	if y := RenderStandardTextLayout(rc, nil); y != 300-Margin {
		t.Errorf("no lines: next y = %v", y)
	}
	if b := drawnBounds(rc.Canvas.Image()); !b.Empty() {
		t.Errorf("no lines should draw nothing, got %v", b)
	}
}

func solidIcon() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 255, 0, 0, 255
	}
	return img
}

func TestIconIsEnhancement(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	loader := assets.LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		calls.Add(1)
		<-release
		return solidIcon(), nil
	})

	rc := fullContext(canvas.New(400, 300))
	rc.Loader = loader
	rc.Enhancer = NewEnhancer(context.Background())

	done := make(chan struct{})
	go func() {
		RenderStandardTextLayout(rc, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("text layout blocked on the icon load")
	}

	// Icon sits right of the game text for a right anchor.
	gameY := 300 - Margin - 2*AdvanceTiny - AdvanceSmall
	ix, iy := 400-Margin-IconSize/2, gameY-IconSize/2
	if got := rc.Canvas.Image().RGBAAt(ix, iy); got.R == 255 && got.G == 0 {
		t.Fatal("icon drawn before settle")
	}

	close(release)
	n, err := rc.Enhancer.Settle(context.Background(), rc.Canvas)
	if err != nil || n != 1 {
		t.Fatalf("Settle = %d, %v", n, err)
	}
	if got := rc.Canvas.Image().RGBAAt(ix, iy); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("icon pixel = %v, want red", got)
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d", calls.Load())
	}
	if n, _ := rc.Enhancer.Settle(context.Background(), rc.Canvas); n != 0 {
		t.Error("second settle redrew")
	}
}

func TestIconFailureKeepsText(t *testing.T) {
	failing := assets.LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		return nil, errors.New("404")
	})
	rc := fullContext(canvas.New(400, 300))
	rc.Loader = failing
	rc.Enhancer = NewEnhancer(context.Background())
	rc.UserPublicName = ""
	rc.ShowPaintedDate, rc.ShowCollection = false, false

	RenderStandardTextLayout(rc, nil)
	n, err := rc.Enhancer.Settle(context.Background(), rc.Canvas)
	if err != nil || n != 0 {
		t.Fatalf("Settle = %d, %v", n, err)
	}
	if b := drawnBounds(rc.Canvas.Image()); b.Empty() {
		t.Error("game text not drawn when its icon failed")
	}
}

func TestSettleHonoursContext(t *testing.T) {
	e := NewEnhancer(context.Background())
	block := make(chan struct{})
	defer close(block)
	e.Go("slow", func(ctx context.Context) (DrawFunc, error) {
		<-block
		return nil, nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := e.Settle(ctx, canvas.New(1, 1)); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Settle error = %v", err)
	}
}

func TestRenderStandardModelNameWraps(t *testing.T) {
	c := canvas.New(300, 300)
	rc := fullContext(c)
	rc.Subject.Name = "Lieutenant Titus of the Second Company Veterans"
	RenderStandardModelName(rc, 200, nil)

	b := drawnBounds(c.Image())
	if b.Empty() {
		t.Fatal("name not drawn")
	}
	if b.Max.Y > 220 {
		t.Errorf("name drawn below its baseline: %v", b)
	}
	if b.Min.Y > 200-2*36 {
		t.Errorf("long name did not wrap upward: %v", b)
	}
	if !c.DefaultState() {
		t.Error("model name left state behind")
	}
}

func TestRenderStandardModelNameBlank(t *testing.T) {
	rc := fullContext(canvas.New(100, 100))
	rc.Subject.Name = "   "
	RenderStandardModelName(rc, 80, nil)
	if b := drawnBounds(rc.Canvas.Image()); !b.Empty() {
		t.Errorf("blank name drew %v", b)
	}
}

func TestWrapText(t *testing.T) {
	c := canvas.New(10, 10)
	_ = c.SetFont("normal 400 16px sans-serif")
	if got := WrapText(c, "  ", 100); got != nil {
		t.Errorf("blank = %q", got)
	}
	if got := WrapText(c, "one two", 0); len(got) != 1 {
		t.Errorf("no width = %q", got)
	}
	got := WrapText(c, "alpha beta gamma", c.MeasureText("alpha beta").Width+1)
	if len(got) != 2 || got[0] != "alpha beta" || got[1] != "gamma" {
		t.Errorf("wrapped = %q", got)
	}
	if got := WrapText(c, "supercalifragilistic", 5); len(got) != 1 {
		t.Errorf("long word = %q", got)
	}
}

func TestParseAnchor(t *testing.T) {
	for in, want := range map[string]Anchor{
		"bottom-left": BottomLeft, " TOP-RIGHT ": TopRight, "top-left": TopLeft, "": BottomRight, "middle": BottomRight,
	} {
		if got := ParseAnchor(in); got != want {
			t.Errorf("ParseAnchor(%q) = %q, want %q", in, got, want)
		}
	}
}
