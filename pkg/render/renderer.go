// renderer.go — Card rendering pipeline. Composites a subject photo with a
// theme's text layout, decorations and components.
// Uses a layered approach: photo -> backdrop -> text -> border -> overlays ->
// components, with icons applied last when the result settles.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/canvas"
	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/overlay"
	"github.com/xob0t/hobbycard/pkg/theme"
)

var (
	ErrNoSubject = errors.New("render: no subject")
	ErrNoTheme   = errors.New("render: no theme")
	ErrNoPhoto   = errors.New("render: subject has no photo")
)

const (
	borderWidth    = 4
	backdropShare  = 0.45
	backdropAlpha  = 0.85
	defaultShadow  = 0.8
	defaultOverlay = 1.0
)

// Options are the caller's per-render choices.
type Options struct {
	Anchor          layout.Anchor `json:"anchor"`
	ShadowOpacity   float64       `json:"shadowOpacity"`
	OverlayOpacity  float64       `json:"overlayOpacity"`
	ShowPaintedDate bool          `json:"showPaintedDate"`
	ShowCollection  bool          `json:"showCollection"`
	ShowGameDetails bool          `json:"showGameDetails"`
	DarkText        bool          `json:"darkText"`
	// MaxWidth downscales wider photos; 0 keeps the photo size.
	MaxWidth int    `json:"maxWidth,omitempty"`
	ShareURL string `json:"shareUrl,omitempty"`
}

// DefaultOptions shows every line, anchored bottom-right.
func DefaultOptions() Options {
	return Options{
		Anchor:          layout.BottomRight,
		ShadowOpacity:   defaultShadow,
		OverlayOpacity:  defaultOverlay,
		ShowPaintedDate: true,
		ShowCollection:  true,
		ShowGameDetails: true,
	}
}

// Request is one render call.
type Request struct {
	Theme   *theme.Theme
	Subject *layout.Subject
	// Photo, when set, is used instead of loading Subject.ImageURL.
	Photo image.Image

	UserPublicName string
	UserMetaName   string
	Options        Options
}

// Renderer draws cards. It is safe for concurrent use; each render gets its
// own surface and face cache.
type Renderer struct {
	fonts  *fonts.Registry
	loader assets.Loader
}

// New creates a renderer resolving fonts through reg and images through
// loader.
func New(reg *fonts.Registry, loader assets.Loader) *Renderer {
	if reg == nil {
		reg = fonts.Default()
	}
	return &Renderer{fonts: reg, loader: loader}
}

// Render runs the pipeline. Fonts and the photo are loaded first; a photo
// that cannot be loaded fails the render. Everything after that is
// best-effort: failing overlays, components and icons are logged and skipped.
// Icons load in the background; call Result.Settle to draw them.
func (r *Renderer) Render(ctx context.Context, req Request) (*Result, error) {
	if req.Subject == nil {
		return nil, ErrNoSubject
	}
	th := req.Theme
	if th == nil {
		return nil, ErrNoTheme
	}

	if err := th.LoadFonts(ctx, r.fonts); err != nil {
		return nil, err
	}

	photo, err := r.photo(ctx, req)
	if err != nil {
		return nil, err
	}
	if maxW := req.Options.MaxWidth; maxW > 0 && photo.Bounds().Dx() > maxW {
		photo = imaging.Resize(photo, maxW, 0, imaging.Lanczos)
	}

	c := canvas.FromImage(photo, r.fonts.NewCache())
	opts := req.Options
	rc := &layout.RenderContext{
		Canvas:          c,
		Subject:         req.Subject,
		UserPublicName:  req.UserPublicName,
		UserMetaName:    req.UserMetaName,
		ShadowOpacity:   opts.ShadowOpacity,
		Anchor:          opts.Anchor,
		ShowPaintedDate: opts.ShowPaintedDate,
		ShowCollection:  opts.ShowCollection,
		ShowGameDetails: opts.ShowGameDetails,
		DarkText:        opts.DarkText,
		ShareURL:        opts.ShareURL,
		Loader:          r.loader,
		Enhancer:        layout.NewEnhancer(ctx),
	}
	if th.Options.CustomTextPosition {
		rc.Anchor = layout.BottomRight
	}

	drawBackdrop(rc, th)

	strategy := th.Strategy()
	y := strategy.RenderStandardLayout(rc, th)
	strategy.RenderModelName(rc, y, th)

	drawBorder(c, th)
	overlay.Composite(c, th.Options.VisualOverlays, opts.OverlayOpacity)
	for _, comp := range th.Options.CustomComponents {
		drawComponent(rc, th, comp)
	}

	return &Result{Theme: th.ID, canvas: c, enhancer: rc.Enhancer}, nil
}

func (r *Renderer) photo(ctx context.Context, req Request) (image.Image, error) {
	if req.Photo != nil {
		return req.Photo, nil
	}
	if req.Subject.ImageURL == "" {
		return nil, ErrNoPhoto
	}
	if r.loader == nil {
		return nil, fmt.Errorf("render: no loader for %s", req.Subject.ImageURL)
	}
	img, err := r.loader.Load(ctx, req.Subject.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("render: load photo: %w", err)
	}
	return img, nil
}

// drawBackdrop fades the theme gradient colour in from the anchor edge so
// text stays legible over busy photos.
func drawBackdrop(rc *layout.RenderContext, th *theme.Theme) {
	base, err := canvas.ParseColor(th.Colors.Gradient)
	if err != nil {
		log.Printf("warning: theme %s gradient: %v", th.ID, err)
		return
	}
	c := rc.Canvas
	w, h := rc.Width(), rc.Height()
	band := h * backdropShare

	g := canvas.NewLinearGradient(0, h-band, 0, h)
	y := h - band
	if !rc.Anchor.Bottom() {
		g = canvas.NewLinearGradient(0, band, 0, 0)
		y = 0
	}
	g.AddColorStop(0, canvas.WithAlpha(base, 0))
	g.AddColorStop(1, canvas.WithAlpha(base, backdropAlpha))

	c.Scoped(func() {
		c.FillStyle = g
		c.FillRect(0, y, w, band)
	})
}

func drawBorder(c *canvas.Context, th *theme.Theme) {
	if th.Colors.Border == "" {
		return
	}
	c.Scoped(func() {
		c.SetStrokeColor(th.Colors.Border)
		c.LineWidth = borderWidth
		c.StrokeRect(borderWidth/2, borderWidth/2, float64(c.Width()-borderWidth), float64(c.Height()-borderWidth))
	})
}

func drawComponent(rc *layout.RenderContext, th *theme.Theme, comp theme.Component) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("warning: component %s panicked: %v", comp.Name(), r)
		}
		rc.Canvas.ResetCompositing()
		rc.Canvas.ResetShadow()
	}()
	if err := comp.Draw(rc, th); err != nil {
		log.Printf("warning: component %s: %v", comp.Name(), err)
	}
}
