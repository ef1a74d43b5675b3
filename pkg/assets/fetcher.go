package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrNotFound is returned for an empty reference or an unknown asset id.
	ErrNotFound = errors.New("asset not found")
	// ErrFilesDisabled is returned for a file path when file access is off.
	ErrFilesDisabled = errors.New("local file references are disabled")
)

// Loader resolves an image reference.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) { return f(ctx, ref) }

const maxDownload = 32 << 20

// Fetcher is the default Loader. References are tried as, in order: an id in
// the store (optionally written as its /api/assets/ URL), a data: URI, an
// http(s) URL, and a local file path. Decoded images are cached by reference.
type Fetcher struct {
	store  *Store
	client *http.Client
	cache  *lru.Cache[string, image.Image]

	noFiles bool
}

// NewFetcher creates a fetcher. store may be nil; cacheSize <= 0 disables
// caching.
func NewFetcher(store *Store, timeout time.Duration, cacheSize int) (*Fetcher, error) {
	f := &Fetcher{
		store:  store,
		client: &http.Client{Timeout: timeout},
	}
	if cacheSize > 0 {
		c, err := lru.New[string, image.Image](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create image cache: %w", err)
		}
		f.cache = c
	}
	return f, nil
}

// Load implements Loader.
func (f *Fetcher) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	if f.cache != nil {
		if img, ok := f.cache.Get(ref); ok {
			return img, nil
		}
	}

	data, err := f.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", shortRef(ref), err)
	}
	if f.cache != nil {
		f.cache.Add(ref, img)
	}
	return img, nil
}

// DisableFiles rejects local file references. Servers call it so request
// bodies cannot read the host filesystem.
func (f *Fetcher) DisableFiles() *Fetcher {
	f.noFiles = true
	return f
}

// Forget drops ref from the cache.
func (f *Fetcher) Forget(ref string) {
	if f.cache != nil {
		f.cache.Remove(ref)
	}
}

func (f *Fetcher) read(ctx context.Context, ref string) ([]byte, error) {
	if f.store != nil {
		id := strings.TrimPrefix(ref, URL(""))
		if a, ok := f.store.Get(id); ok {
			return a.Data, nil
		}
		if id != ref {
			return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
		}
	}

	switch {
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.download(ctx, ref)
	case f.noFiles:
		return nil, fmt.Errorf("%s: %w", ref, ErrFilesDisabled)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ref, err)
		}
		return data, nil
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	return data, nil
}

// decodeDataURI handles "data:[<mime>][;base64],<data>".
func decodeDataURI(ref string) ([]byte, error) {
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, errors.New("malformed data URI")
	}
	meta, payload := ref[len("data:"):comma], ref[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return []byte(s), nil
}

func shortRef(ref string) string {
	if strings.HasPrefix(ref, "data:") && len(ref) > 32 {
		return ref[:32] + "..."
	}
	return ref
}
