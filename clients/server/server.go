// Package server provides the hobbycard theme editor UI and HTTP API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/preview"
	"github.com/xob0t/hobbycard/pkg/render"
	"github.com/xob0t/hobbycard/pkg/theme"
)

//go:embed web/*
var webContent embed.FS

// Config wires the server to its collaborators. Zero fields get defaults.
type Config struct {
	Fonts   *fonts.Registry
	Store   *assets.Store
	Fetcher *assets.Fetcher
	Clock   clockwork.Clock

	AllowedOrigins  []string
	PreviewMaxWidth int
	Defaults        render.Options
}

// ── Server ──

type srv struct {
	fonts    *fonts.Registry
	store    *assets.Store
	fetcher  *assets.Fetcher
	renderer *render.Renderer
	preview  *preview.Harness
	defaults render.Options
	maxWidth int

	mu     sync.RWMutex
	custom map[theme.ID]*theme.Theme
}

// New builds the editor handler: the JSON API under /api, the embedded UI
// at /, all behind CORS.
func New(cfg Config) (http.Handler, error) {
	if cfg.Fonts == nil {
		cfg.Fonts = fonts.Default()
	}
	if cfg.Store == nil {
		cfg.Store = assets.NewStore()
	}
	if cfg.Fetcher == nil {
		f, err := assets.NewFetcher(cfg.Store, 10*time.Second, 64)
		if err != nil {
			return nil, err
		}
		cfg.Fetcher = f.DisableFiles()
	}
	if cfg.Defaults == (render.Options{}) {
		cfg.Defaults = render.DefaultOptions()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	r := render.New(cfg.Fonts, cfg.Fetcher)
	s := &srv{
		fonts:    cfg.Fonts,
		store:    cfg.Store,
		fetcher:  cfg.Fetcher,
		renderer: r,
		preview:  preview.New(r, cfg.Clock),
		defaults: cfg.Defaults,
		maxWidth: cfg.PreviewMaxWidth,
		custom:   make(map[theme.ID]*theme.Theme),
	}
	opts := cfg.Defaults
	opts.MaxWidth = s.maxWidth
	s.preview.SetOptions(opts)

	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		return nil, fmt.Errorf("embed web: %w", err)
	}

	engine := gin.Default()
	s.RegisterRoutes(engine)
	engine.NoRoute(gin.WrapH(http.FileServer(http.FS(webFS))))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(engine), nil
}

// RegisterRoutes mounts the API on r.
func (s *srv) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/themes", s.listThemes)
		api.GET("/themes/:id", s.getTheme)
		api.GET("/themes/:id/fonts", s.themeFonts)
		api.POST("/themes/:id/duplicate", s.duplicateTheme)
		api.PATCH("/themes/:id", s.patchTheme)
		api.DELETE("/themes/:id", s.deleteTheme)

		api.POST("/render", s.render)

		api.GET("/preview", s.getPreview)
		api.PUT("/preview", s.updatePreview)
		api.GET("/preview/image", s.previewImage)
		api.POST("/preview/save", s.savePreview)

		api.POST("/upload/image", s.uploadImage)
		api.POST("/upload/font", s.uploadFont)
		api.GET("/assets", s.listAssets)
		api.GET("/assets/:id", s.getAsset)
		api.DELETE("/assets/:id", s.deleteAsset)
	}
}

// RunServe serves the editor on addr until ctx is cancelled.
func RunServe(ctx context.Context, addr string, cfg Config) error {
	h, err := New(cfg)
	if err != nil {
		return err
	}
	hs := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Printf("warning: shutdown: %v", err)
		}
	}()

	log.Printf("hobbycard editor → http://localhost%s", addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ── Helpers ──

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// statusFor maps engine errors to HTTP statuses; anything unrecognised gets
// fallback.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, theme.ErrUnknownTheme):
		return http.StatusNotFound
	case errors.Is(err, theme.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, render.ErrNoSubject), errors.Is(err, render.ErrNoPhoto),
		errors.Is(err, preview.ErrNoTheme), errors.Is(err, preview.ErrNoSample):
		return http.StatusBadRequest
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, assets.ErrFilesDisabled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return fallback
	}
}
