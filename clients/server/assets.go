package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/fonts"
)

const maxUpload = 10 << 20

// ── Uploads ──

func readUpload(c *gin.Context) (name string, data []byte, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("no file")
	}
	if fh.Size > maxUpload {
		return "", nil, fmt.Errorf("%s is larger than %d bytes", fh.Filename, maxUpload)
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err = io.ReadAll(io.LimitReader(f, maxUpload))
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func (s *srv) uploadImage(c *gin.Context) {
	name, data, err := readUpload(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "image/png"
	}
	id := s.store.Add(name, data, mimeType)
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": name, "url": assets.URL(id)})
}

// uploadFont registers a TTF/OTF under the form's family, weight and style
// so themes can name it.
func (s *srv) uploadFont(c *gin.Context) {
	family := c.PostForm("family")
	if family == "" {
		abort(c, http.StatusBadRequest, errors.New("missing family"))
		return
	}
	weight, err := strconv.Atoi(c.DefaultPostForm("weight", "400"))
	if err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("weight: %w", err))
		return
	}
	name, data, err := readUpload(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	v := fonts.VariantFor(weight, c.PostForm("style"))
	if err := s.fonts.RegisterTTF(family, v, data); err != nil {
		abort(c, http.StatusUnprocessableEntity, err)
		return
	}
	id := s.store.Add(name, data, "font/ttf")
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": name, "family": family, "url": assets.URL(id)})
}

// ── Asset serving ──

func (s *srv) getAsset(c *gin.Context) {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		abort(c, http.StatusNotFound, assets.ErrNotFound)
		return
	}
	c.Data(http.StatusOK, a.Mime, a.Data)
}

func (s *srv) listAssets(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *srv) deleteAsset(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Remove(id) {
		abort(c, http.StatusNotFound, assets.ErrNotFound)
		return
	}
	s.fetcher.Forget(assets.URL(id))
	s.fetcher.Forget(id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}
