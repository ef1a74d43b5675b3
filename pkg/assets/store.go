// Package assets loads the images a render needs (subject photos, game
// icons) from uploaded assets, data URIs, http(s) URLs or local files.
package assets

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Asset is an uploaded file held in memory.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mime string `json:"mime"`
	Data []byte `json:"-"`
}

// Info describes an asset without its data.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mime string `json:"mime"`
	Size int    `json:"size"`
	URL  string `json:"url"`
}

// Store keeps uploaded assets in memory, keyed by generated id.
type Store struct {
	mu     sync.RWMutex
	assets map[string]*Asset
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{assets: make(map[string]*Asset)}
}

// Add stores data and returns its id.
func (s *Store) Add(name string, data []byte, mimeType string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.assets[id] = &Asset{ID: id, Name: name, Mime: mimeType, Data: data}
	s.mu.Unlock()
	return id
}

// Get returns the asset with id.
func (s *Store) Get(id string) (*Asset, bool) {
	s.mu.RLock()
	a, ok := s.assets[id]
	s.mu.RUnlock()
	return a, ok
}

// List describes every stored asset, sorted by name.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Info, 0, len(s.assets))
	for id, a := range s.assets {
		out = append(out, Info{ID: id, Name: a.Name, Mime: a.Mime, Size: len(a.Data), URL: URL(id)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Remove deletes the asset with id. It reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return false
	}
	delete(s.assets, id)
	return true
}

// URL is the editor API path an asset is served from.
func URL(id string) string { return "/api/assets/" + id }
