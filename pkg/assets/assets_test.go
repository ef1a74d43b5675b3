package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStore(t *testing.T) {
	s := NewStore()
	b := s.Add("b.png", []byte("bb"), "image/png")
	a := s.Add("a.png", []byte("a"), "image/png")
	if a == b {
		t.Fatal("ids must be unique")
	}

	list := s.List()
	if len(list) != 2 || list[0].Name != "a.png" || list[0].Size != 1 || list[0].URL != "/api/assets/"+a {
		t.Errorf("List = %+v", list)
	}
	if got, ok := s.Get(b); !ok || string(got.Data) != "bb" {
		t.Errorf("Get(%s) = %v, %v", b, got, ok)
	}
	if !s.Remove(b) || s.Remove(b) {
		t.Error("Remove should succeed once")
	}
	if _, ok := s.Get(b); ok {
		t.Error("removed asset still present")
	}
}

func TestFetcherSources(t *testing.T) {
	data := pngBytes(t, 3, 2)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	id := store.Add("photo.png", data, "image/png")

	f, err := NewFetcher(store, 5*time.Second, 8)
	if err != nil {
		t.Fatal(err)
	}

	refs := map[string]string{
		"store id":  id,
		"store url": URL(id),
		"data uri":  "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		"http":      srv.URL + "/icon.png",
		"file":      file,
	}
	for name, ref := range refs {
		t.Run(name, func(t *testing.T) {
			img, err := f.Load(context.Background(), ref)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
				t.Errorf("bounds = %v", b)
			}
		})
	}

	if _, err := f.Load(context.Background(), srv.URL+"/icon.png"); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (cached)", got)
	}
}

func TestFetcherErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f, err := NewFetcher(NewStore(), time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := f.Load(ctx, "  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty ref error = %v", err)
	}
	if _, err := f.Load(ctx, URL("nope")); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown asset error = %v", err)
	}
	if _, err := f.Load(ctx, srv.URL+"/x.png"); err == nil {
		t.Error("404 should fail")
	}
	if _, err := f.Load(ctx, "data:image/png;base64,!!!"); err == nil {
		t.Error("bad base64 should fail")
	}
	if _, err := f.Load(ctx, "data:text/plain,hello"); err == nil {
		t.Error("non-image payload should fail to decode")
	}
	if _, err := f.Load(ctx, filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestFetcherTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	f, _ := NewFetcher(nil, 50*time.Millisecond, 0)
	if _, err := f.Load(context.Background(), srv.URL+"/slow.png"); err == nil {
		t.Error("expected timeout")
	}
}

func TestFetcherDisableFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFetcher(nil, time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(context.Background(), path); err != nil {
		t.Fatalf("file load: %v", err)
	}
	f.DisableFiles()
	if _, err := f.Load(context.Background(), path); !errors.Is(err, ErrFilesDisabled) {
		t.Errorf("err = %v, want ErrFilesDisabled", err)
	}
}
