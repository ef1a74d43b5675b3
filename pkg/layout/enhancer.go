// enhancer.go — Best-effort draws (icons) that load in the background and are
// applied after the base composite.
package layout

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xob0t/hobbycard/pkg/canvas"
)

// DrawFunc paints a loaded enhancement onto the canvas.
type DrawFunc func(c *canvas.Context)

// LoadFunc fetches whatever an enhancement needs and returns how to draw it.
type LoadFunc func(ctx context.Context) (DrawFunc, error)

type enhancement struct {
	name string
	draw DrawFunc
}

// Enhancer runs enhancement loads concurrently without blocking the caller.
// Nothing touches the canvas until Settle, which applies the successful
// draws in dispatch order. Failures are logged and dropped.
type Enhancer struct {
	ctx context.Context
	g   *errgroup.Group

	mu      sync.Mutex
	tasks   []*enhancement
	settled bool
}

// NewEnhancer creates an enhancer whose loads are cancelled with ctx.
func NewEnhancer(ctx context.Context) *Enhancer {
	g, gctx := errgroup.WithContext(ctx)
	return &Enhancer{ctx: gctx, g: g}
}

// Go starts load in the background.
func (e *Enhancer) Go(name string, load LoadFunc) {
	t := &enhancement{name: name}
	e.mu.Lock()
	if e.settled {
		e.mu.Unlock()
		log.Printf("warning: enhancement %q dispatched after settle, dropped", name)
		return
	}
	e.tasks = append(e.tasks, t)
	e.mu.Unlock()

	e.g.Go(func() error {
		draw, err := load(e.ctx)
		if err != nil {
			log.Printf("warning: %s: %v", name, err)
			return nil
		}
		e.mu.Lock()
		t.draw = draw
		e.mu.Unlock()
		return nil
	})
}

// Pending returns the number of dispatched enhancements.
func (e *Enhancer) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// Settle waits for every load, then draws the successful ones onto c and
// returns how many were drawn. It returns early with ctx's error if ctx ends
// first; later calls draw nothing.
func (e *Enhancer) Settle(ctx context.Context, c *canvas.Context) (int, error) {
	done := make(chan struct{})
	go func() {
		_ = e.g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	e.mu.Lock()
	if e.settled {
		e.mu.Unlock()
		return 0, nil
	}
	e.settled = true
	tasks := e.tasks
	e.mu.Unlock()

	drawn := 0
	for _, t := range tasks {
		if t.draw == nil {
			continue
		}
		if applyEnhancement(c, t) {
			drawn++
		}
	}
	return drawn, nil
}

func applyEnhancement(c *canvas.Context, t *enhancement) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("warning: %s: draw failed: %v", t.name, r)
			ok = false
		}
	}()
	c.Scoped(func() { t.draw(c) })
	return true
}
