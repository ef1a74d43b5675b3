package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/theme"
)

func solid(w, h int, c color.Color) image.Image {
	return canvas.NewSolidImage(w, h, c)
}

// mapLoader serves images by reference; unknown references fail.
func mapLoader(imgs map[string]image.Image) assets.Loader {
	return assets.LoaderFunc(func(_ context.Context, ref string) (image.Image, error) {
		if img, ok := imgs[ref]; ok {
			return img, nil
		}
		return nil, assets.ErrNotFound
	})
}

func mustTheme(t *testing.T, id theme.ID) *theme.Theme {
	t.Helper()
	th, err := theme.Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func TestRenderValidation(t *testing.T) {
	r := New(nil, nil)
	ctx := context.Background()

	if _, err := r.Render(ctx, Request{Theme: mustTheme(t, theme.Default)}); !errors.Is(err, ErrNoSubject) {
		t.Errorf("no subject: err = %v", err)
	}
	if _, err := r.Render(ctx, Request{Subject: &layout.Subject{Name: "x"}}); !errors.Is(err, ErrNoTheme) {
		t.Errorf("no theme: err = %v", err)
	}
	_, err := r.Render(ctx, Request{Theme: mustTheme(t, theme.Default), Subject: &layout.Subject{Name: "x"}})
	if !errors.Is(err, ErrNoPhoto) {
		t.Errorf("no photo: err = %v", err)
	}
}

func TestRenderPhotoFailureIsFatal(t *testing.T) {
	r := New(nil, mapLoader(nil))
	_, err := r.Render(context.Background(), Request{
		Theme:   mustTheme(t, theme.Default),
		Subject: &layout.Subject{Name: "x", ImageURL: "missing.png"},
		Options: DefaultOptions(),
	})
	if !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("err = %v, want wrapped ErrNotFound", err)
	}
}

func TestRenderSizesCanvasToPhoto(t *testing.T) {
	r := New(nil, mapLoader(map[string]image.Image{"photo": solid(320, 240, color.RGBA{90, 90, 90, 255})}))
	res, err := r.Render(context.Background(), Request{
		Theme:          mustTheme(t, theme.Classic),
		Subject:        &layout.Subject{Name: "Knight", ImageURL: "photo", PaintedDate: "2024-05-01"},
		UserPublicName: "Ada",
		Options:        DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	b := res.Image().Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("canvas = %v, want 320x240", b)
	}
	if res.Theme != theme.Classic {
		t.Errorf("result theme = %q", res.Theme)
	}
	if !res.Canvas().DefaultState() {
		t.Error("canvas state leaked")
	}
}

func TestRenderMaxWidth(t *testing.T) {
	r := New(nil, nil)
	opts := DefaultOptions()
	opts.MaxWidth = 200
	res, err := r.Render(context.Background(), Request{
		Theme:   mustTheme(t, theme.Minimal),
		Subject: &layout.Subject{Name: "Scout"},
		Photo:   solid(800, 400, color.White),
		Options: opts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b := res.Image().Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("canvas = %v, want 200x100", b)
	}
}

func TestRenderBackdropAndBorder(t *testing.T) {
	r := New(nil, nil)
	opts := DefaultOptions()
	opts.ShowPaintedDate, opts.ShowCollection, opts.ShowGameDetails = false, false, false
	res, err := r.Render(context.Background(), Request{
		Theme:   mustTheme(t, theme.Default),
		Subject: &layout.Subject{Name: ""},
		Photo:   solid(200, 200, color.White),
		Options: opts,
	})
	if err != nil {
		t.Fatal(err)
	}
	img := res.Image()
	top, bottom := img.RGBAAt(100, 20), img.RGBAAt(100, 190)
	if top.R != 255 {
		t.Errorf("top pixel = %v, want untouched photo", top)
	}
	if bottom.R >= top.R {
		t.Errorf("bottom pixel = %v, want darkened by the backdrop", bottom)
	}

	gold, err := r.Render(context.Background(), Request{
		Theme:   mustTheme(t, theme.Classic),
		Subject: &layout.Subject{Name: ""},
		Photo:   solid(200, 200, color.White),
		Options: opts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if edge := gold.Image().RGBAAt(1, 50); edge.B > 150 {
		t.Errorf("edge pixel = %v, want gold border", edge)
	}
}

func TestRenderKillTeamGrowsCard(t *testing.T) {
	r := New(nil, nil)
	res, err := r.Render(context.Background(), Request{
		Theme:   mustTheme(t, theme.KillTeam),
		Subject: &layout.Subject{Name: "Gunner", PaintedDate: "2024-03-15"},
		Photo:   solid(300, 200, color.RGBA{0, 0, 255, 255}),
		Options: DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if h := res.Image().Bounds().Dy(); h <= 200 {
		t.Errorf("height = %d, want footer band below the photo", h)
	}
}

func TestRenderIconsAfterSettle(t *testing.T) {
	icon := solid(8, 8, color.RGBA{255, 0, 0, 255})
	r := New(nil, mapLoader(map[string]image.Image{"icon": icon}))
	opts := DefaultOptions()
	opts.ShadowOpacity = 0
	res, err := r.Render(context.Background(), Request{
		Theme: mustTheme(t, theme.Minimal),
		Subject: &layout.Subject{
			Name: "Scout",
			Game: &layout.Game{Name: "Skirmish", Icon: "icon"},
		},
		Photo:   solid(400, 300, color.White),
		Options: opts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pending() != 1 {
		t.Fatalf("pending = %d, want 1 icon", res.Pending())
	}
	n, err := res.Settle(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("Settle = %d, %v", n, err)
	}
	// Game line is the only contextual line, flush with the bottom margin.
	px := res.Image().RGBAAt(400-layout.Margin-layout.IconSize/2, 300-layout.Margin-layout.IconSize/2)
	if px.R < 200 || px.G > 60 {
		t.Errorf("icon pixel = %v, want red", px)
	}
}

func TestRenderMissingIconKeepsCard(t *testing.T) {
	r := New(nil, mapLoader(nil))
	res, err := r.Render(context.Background(), Request{
		Theme: mustTheme(t, theme.Default),
		Subject: &layout.Subject{
			Name: "Scout",
			Game: &layout.Game{Name: "Skirmish", Icon: "gone"},
		},
		Photo:   solid(300, 200, color.White),
		Options: DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n, err := res.Settle(context.Background()); err != nil || n != 0 {
		t.Errorf("Settle = %d, %v; want nothing drawn, no error", n, err)
	}
}

type panicky struct{}

func (panicky) Name() string { return "panicky" }

func (panicky) Draw(rc *layout.RenderContext, _ *theme.Theme) error {
	rc.Canvas.GlobalAlpha = 0.1
	panic("boom")
}

type failing struct{ drawn *bool }

func (failing) Name() string { return "failing" }

func (f failing) Draw(*layout.RenderContext, *theme.Theme) error {
	*f.drawn = true
	return errors.New("nope")
}

func TestRenderComponentFailuresIsolated(t *testing.T) {
	th := mustTheme(t, theme.Default).Duplicate()
	var reached bool
	th.Options.CustomComponents = []theme.Component{panicky{}, failing{&reached}}

	res, err := New(nil, nil).Render(context.Background(), Request{
		Theme:   th,
		Subject: &layout.Subject{Name: "x"},
		Photo:   solid(100, 100, color.White),
		Options: DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reached {
		t.Error("component after a panic did not run")
	}
	if !res.Canvas().DefaultState() {
		t.Error("panicking component leaked state")
	}
}

func TestRenderEveryTheme(t *testing.T) {
	r := New(nil, nil)
	for _, th := range theme.All() {
		t.Run(string(th.ID), func(t *testing.T) {
			opts := DefaultOptions()
			opts.ShareURL = "https://example.com/m/7"
			res, err := r.Render(context.Background(), Request{
				Theme: th,
				Subject: &layout.Subject{
					Name:        "Brother Example",
					PaintedDate: "2023-11-20",
					Box:         &layout.Box{Name: "Vanguard", Game: &layout.Game{Name: "Skirmish"}},
				},
				UserPublicName: "Ada",
				Photo:          solid(360, 270, color.RGBA{120, 120, 120, 255}),
				Options:        opts,
			})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := res.Settle(context.Background()); err != nil {
				t.Fatal(err)
			}
		})
	}
}
