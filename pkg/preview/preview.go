// Package preview is the theme editor's live preview: it re-renders a sample
// card whenever the edited theme or options change and keeps only the newest
// result.
package preview

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/render"
	"github.com/xob0t/hobbycard/pkg/theme"
)

var (
	ErrNoTheme  = errors.New("preview: no theme selected")
	ErrNoSample = errors.New("preview: no sample subject")
)

// Frame is one finished preview render.
type Frame struct {
	ID         uint64        `json:"id"`
	Theme      theme.ID      `json:"theme"`
	Image      *image.RGBA   `json:"-"`
	RenderedAt time.Time     `json:"renderedAt"`
	Elapsed    time.Duration `json:"elapsed"`
	// Stale is set on a frame superseded by a newer request before it
	// finished. Stale frames are never stored.
	Stale bool `json:"stale"`
}

// Harness holds the editor state. Each Update takes a snapshot of that
// state under a new request id, so edits made while a render is in flight
// apply to the next one.
type Harness struct {
	renderer *render.Renderer
	clock    clockwork.Clock

	mu       sync.Mutex
	theme    *theme.Theme
	subject  *layout.Subject
	photo    image.Image
	userName string
	opts     render.Options
	seq      uint64
	latest   *Frame
}

// New creates a harness rendering through r. A nil clock uses the real one.
func New(r *render.Renderer, clock clockwork.Clock) *Harness {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Harness{renderer: r, clock: clock, opts: render.DefaultOptions()}
}

// SetTheme selects the theme to edit. Built-in themes are duplicated so the
// editor always works on an editable copy.
func (h *Harness) SetTheme(t *theme.Theme) {
	if t.IsDefault {
		t = t.Duplicate()
	} else {
		t = t.Clone()
	}
	h.mu.Lock()
	h.theme = t
	h.mu.Unlock()
}

// Theme returns a copy of the theme being edited.
func (h *Harness) Theme() (*theme.Theme, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.theme == nil {
		return nil, false
	}
	return h.theme.Clone(), true
}

// Patch applies an edit to the theme being edited.
func (h *Harness) Patch(p theme.Patch) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.theme == nil {
		return ErrNoTheme
	}
	return h.theme.Apply(p)
}

// SetSample sets the subject and, optionally, its photo. A nil photo loads
// the subject's image_url on each render.
func (h *Harness) SetSample(s *layout.Subject, photo image.Image, userName string) {
	h.mu.Lock()
	h.subject = s
	h.photo = photo
	h.userName = userName
	h.mu.Unlock()
}

// SetOptions replaces the render options.
func (h *Harness) SetOptions(opts render.Options) {
	h.mu.Lock()
	h.opts = opts
	h.mu.Unlock()
}

// Options returns the render options.
func (h *Harness) Options() render.Options {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opts
}

// Update renders the current state under a new request id and waits for
// icons. The frame is stored only if no newer request was issued meanwhile;
// otherwise it comes back with Stale set.
func (h *Harness) Update(ctx context.Context) (*Frame, error) {
	h.mu.Lock()
	if h.theme == nil {
		h.mu.Unlock()
		return nil, ErrNoTheme
	}
	if h.subject == nil {
		h.mu.Unlock()
		return nil, ErrNoSample
	}
	h.seq++
	id := h.seq
	req := render.Request{
		Theme:          h.theme.Clone(),
		Subject:        h.subject,
		Photo:          h.photo,
		UserPublicName: h.userName,
		Options:        h.opts,
	}
	h.mu.Unlock()

	start := h.clock.Now()
	res, err := h.renderer.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := res.Settle(ctx); err != nil {
		return nil, err
	}

	f := &Frame{
		ID:         id,
		Theme:      res.Theme,
		Image:      res.Image(),
		RenderedAt: h.clock.Now(),
		Elapsed:    h.clock.Since(start),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if id != h.seq {
		f.Stale = true
		return f, nil
	}
	h.latest = f
	return f, nil
}

// Latest returns the newest stored frame.
func (h *Harness) Latest() (*Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.latest != nil
}

// Seq returns the id of the most recently issued request.
func (h *Harness) Seq() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}
