package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/generator"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/preview"
	"github.com/xob0t/hobbycard/pkg/render"
	"github.com/xob0t/hobbycard/pkg/theme"
)

// ── Themes ──

// lookup finds a user theme first, then a built-in. The result is a copy.
func (s *srv) lookup(id theme.ID) (*theme.Theme, error) {
	s.mu.RLock()
	t, ok := s.custom[id]
	s.mu.RUnlock()
	if ok {
		return t.Clone(), nil
	}
	return theme.Lookup(id)
}

func (s *srv) listThemes(c *gin.Context) {
	out := make([]theme.Info, 0, len(theme.IDs()))
	for _, t := range theme.All() {
		out = append(out, t.Info())
	}

	s.mu.RLock()
	custom := make([]theme.Info, 0, len(s.custom))
	for _, t := range s.custom {
		custom = append(custom, t.Info())
	}
	s.mu.RUnlock()
	sort.Slice(custom, func(i, j int) bool { return custom[i].Name < custom[j].Name })

	c.JSON(http.StatusOK, append(out, custom...))
}

func (s *srv) getTheme(c *gin.Context) {
	t, err := s.lookup(theme.ID(c.Param("id")))
	if err != nil {
		abort(c, statusFor(err, http.StatusInternalServerError), err)
		return
	}
	c.JSON(http.StatusOK, t.Info())
}

func (s *srv) duplicateTheme(c *gin.Context) {
	t, err := s.lookup(theme.ID(c.Param("id")))
	if err != nil {
		abort(c, statusFor(err, http.StatusInternalServerError), err)
		return
	}
	dup := t.Duplicate()
	s.mu.Lock()
	s.custom[dup.ID] = dup
	s.mu.Unlock()
	c.JSON(http.StatusCreated, dup.Info())
}

func (s *srv) patchTheme(c *gin.Context) {
	var p theme.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	id := theme.ID(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.custom[id]
	if !ok {
		if _, err := theme.Lookup(id); err != nil {
			abort(c, statusFor(err, http.StatusInternalServerError), err)
			return
		}
		abort(c, http.StatusForbidden, theme.ErrReadOnly)
		return
	}
	if err := t.Apply(p); err != nil {
		abort(c, statusFor(err, http.StatusBadRequest), err)
		return
	}
	c.JSON(http.StatusOK, t.Info())
}

func (s *srv) deleteTheme(c *gin.Context) {
	id := theme.ID(c.Param("id"))
	s.mu.Lock()
	_, ok := s.custom[id]
	delete(s.custom, id)
	s.mu.Unlock()
	if !ok {
		if _, err := theme.Lookup(id); err == nil {
			abort(c, http.StatusForbidden, theme.ErrReadOnly)
			return
		}
		abort(c, http.StatusNotFound, fmt.Errorf("%w: %q", theme.ErrUnknownTheme, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// fontStyle is one resolved font context, in both renderings the editor
// needs.
type fontStyle struct {
	Context  fonts.Context         `json:"context"`
	Config   fonts.FontStyleConfig `json:"config"`
	CSS      string                `json:"css"`
	Tailwind string                `json:"tailwind"`
	Warnings []string              `json:"warnings,omitempty"`
}

// themeFonts resolves every font context of a theme.
func (s *srv) themeFonts(c *gin.Context) {
	t, err := s.lookup(theme.ID(c.Param("id")))
	if err != nil {
		abort(c, statusFor(err, http.StatusInternalServerError), err)
		return
	}
	out := make([]fontStyle, 0, len(fonts.Contexts))
	for _, ctx := range fonts.Contexts {
		cfg := fonts.GetFontConfig(ctx, t.Fonts)
		out = append(out, fontStyle{
			Context:  ctx,
			Config:   cfg,
			CSS:      fonts.FontConfigToCSSFont(cfg),
			Tailwind: fonts.FontConfigToTailwindClasses(cfg),
			Warnings: fonts.CanvasWarnings(cfg),
		})
	}
	c.JSON(http.StatusOK, out)
}

// ── Render ──

type renderRequest struct {
	Theme          theme.ID        `json:"theme"`
	Subject        *layout.Subject `json:"subject"`
	UserPublicName string          `json:"userPublicName"`
	UserMetaName   string          `json:"userMetaName"`
	Options        json.RawMessage `json:"options"`
	// Format is "png" (default) or "jpg".
	Format string `json:"format"`
}

func (s *srv) render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if req.Theme == "" {
		req.Theme = theme.Default
	}
	t, err := s.lookup(req.Theme)
	if err != nil {
		abort(c, statusFor(err, http.StatusInternalServerError), err)
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res, err := s.renderer.Render(c.Request.Context(), render.Request{
		Theme:          t,
		Subject:        req.Subject,
		UserPublicName: req.UserPublicName,
		UserMetaName:   req.UserMetaName,
		Options:        opts,
	})
	if err != nil {
		abort(c, statusFor(err, http.StatusUnprocessableEntity), err)
		return
	}
	if _, err := res.Settle(c.Request.Context()); err != nil {
		abort(c, statusFor(err, http.StatusInternalServerError), err)
		return
	}

	ext := ".png"
	if req.Format == "jpg" || req.Format == "jpeg" {
		ext = ".jpg"
	}
	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, ext, generator.Config{Image: res.Image()}); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", string(res.Theme)+ext))
	c.Data(http.StatusOK, generator.ContentType(ext), buf.Bytes())
}

// options decodes a request's options over the server defaults. Fields the
// client leaves out keep their default; explicit values, zero included, win.
func (s *srv) options(raw json.RawMessage) (render.Options, error) {
	out := s.defaults
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return render.Options{}, fmt.Errorf("options: %w", err)
	}
	out.Anchor = layout.ParseAnchor(string(out.Anchor))
	return out, nil
}

// ── Preview ──

type previewRequest struct {
	// Theme selects a theme to edit; built-ins are duplicated.
	Theme    theme.ID        `json:"theme,omitempty"`
	Patch    *theme.Patch    `json:"patch,omitempty"`
	Subject  *layout.Subject `json:"subject,omitempty"`
	UserName string          `json:"userName,omitempty"`
	Options  json.RawMessage `json:"options,omitempty"`
}

type previewResponse struct {
	Frame *preview.Frame `json:"frame"`
	Theme theme.Info     `json:"theme"`
	Image string         `json:"image"`
}

func (s *srv) updatePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if req.Theme != "" {
		t, err := s.lookup(req.Theme)
		if err != nil {
			abort(c, statusFor(err, http.StatusInternalServerError), err)
			return
		}
		s.preview.SetTheme(t)
	}
	if req.Patch != nil {
		if err := s.preview.Patch(*req.Patch); err != nil {
			abort(c, statusFor(err, http.StatusBadRequest), err)
			return
		}
	}
	if req.Subject != nil {
		s.preview.SetSample(req.Subject, nil, req.UserName)
	}
	if len(req.Options) > 0 {
		opts, err := s.options(req.Options)
		if err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
		opts.MaxWidth = s.maxWidth
		s.preview.SetOptions(opts)
	}

	f, err := s.preview.Update(c.Request.Context())
	if err != nil {
		abort(c, statusFor(err, http.StatusUnprocessableEntity), err)
		return
	}
	s.respondFrame(c, f)
}

func (s *srv) getPreview(c *gin.Context) {
	f, ok := s.preview.Latest()
	if !ok {
		abort(c, http.StatusNotFound, errors.New("no preview rendered yet"))
		return
	}
	s.respondFrame(c, f)
}

// savePreview stores the theme being edited as a user theme.
func (s *srv) savePreview(c *gin.Context) {
	t, ok := s.preview.Theme()
	if !ok {
		abort(c, http.StatusBadRequest, preview.ErrNoTheme)
		return
	}
	s.mu.Lock()
	s.custom[t.ID] = t
	s.mu.Unlock()
	c.JSON(http.StatusCreated, t.Info())
}

func (s *srv) respondFrame(c *gin.Context, f *preview.Frame) {
	resp := previewResponse{Frame: f, Image: "/api/preview/image"}
	if t, ok := s.preview.Theme(); ok {
		resp.Theme = t.Info()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *srv) previewImage(c *gin.Context) {
	f, ok := s.preview.Latest()
	if !ok {
		abort(c, http.StatusNotFound, errors.New("no preview rendered yet"))
		return
	}
	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, ".png", generator.Config{Image: f.Image}); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
