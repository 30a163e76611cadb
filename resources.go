package bramble

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Resources is a registry of named atlases, images and fonts. Templates refer
// to them by name; sprite, texture and label factories look them up here.
type Resources struct {
	atlases map[string]*Atlas
	images  map[string]*ebiten.Image
	fonts   map[string]Font
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{
		atlases: make(map[string]*Atlas),
		images:  make(map[string]*ebiten.Image),
		fonts:   make(map[string]Font),
	}
}

// AddAtlas registers atlas under name, replacing any previous entry.
func (r *Resources) AddAtlas(name string, atlas *Atlas) { r.atlases[name] = atlas }

// LoadAtlas parses TexturePacker JSON and registers the result under name.
func (r *Resources) LoadAtlas(name string, jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	a, err := LoadAtlas(jsonData, pages)
	if err != nil {
		return nil, fmt.Errorf("load atlas %q: %w", name, err)
	}
	r.atlases[name] = a
	return a, nil
}

// Atlas returns the named atlas.
func (r *Resources) Atlas(name string) (*Atlas, bool) {
	a, ok := r.atlases[name]
	return a, ok
}

// AddImage registers img under name.
func (r *Resources) AddImage(name string, img *ebiten.Image) { r.images[name] = img }

// Image returns the named image.
func (r *Resources) Image(name string) (*ebiten.Image, bool) {
	img, ok := r.images[name]
	return img, ok
}

// AddFont registers f under name.
func (r *Resources) AddFont(name string, f Font) { r.fonts[name] = f }

// LoadTTFFont parses TrueType data at size and registers it under name.
func (r *Resources) LoadTTFFont(name string, ttfData []byte, size float64) (Font, error) {
	f, err := LoadTTFFont(ttfData, size)
	if err != nil {
		return nil, err
	}
	r.fonts[name] = f
	return f, nil
}

// Font returns the named font. "default" always resolves to DefaultFont.
func (r *Resources) Font(name string) (Font, bool) {
	if f, ok := r.fonts[name]; ok {
		return f, true
	}
	if name == "default" {
		return DefaultFont(), true
	}
	return nil, false
}

// Names returns the sorted names of every registered resource, by kind.
func (r *Resources) Names() (atlases, images, fonts []string) {
	return sortedKeys(r.atlases), sortedKeys(r.images), sortedKeys(r.fonts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
