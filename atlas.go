package bramble

import (
	"encoding/json"
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a named sub-rectangle within an atlas page.
type TextureRegion struct {
	Page          int
	X, Y          int // top-left corner within the page
	Width, Height int // stored size (may be trimmed)
	SourceWidth   int // untrimmed size as authored
	SourceHeight  int
	OffsetX       int // trim offset inside the untrimmed frame
	OffsetY       int
	Rotated       bool // stored 90 degrees clockwise in the page
}

// Bounds returns the region rectangle within its page.
func (r TextureRegion) Bounds() image.Rectangle {
	w, h := r.Width, r.Height
	if r.Rotated {
		w, h = h, w
	}
	return image.Rect(r.X, r.Y, r.X+w, r.Y+h)
}

// Atlas holds page images and a map of named regions.
type Atlas struct {
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// Region returns the named region.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns the region names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for n := range a.regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Page returns the image of the region's page, or nil when it is missing.
func (a *Atlas) Page(r TextureRegion) *ebiten.Image {
	if r.Page < 0 || r.Page >= len(a.Pages) {
		return nil
	}
	return a.Pages[r.Page]
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("bramble: failed to parse atlas JSON: %w", err)
	}
	atlas := &Atlas{Pages: pages, regions: make(map[string]TextureRegion)}
	switch {
	case probe.Textures != nil:
		var textures []struct {
			Frames map[string]atlasFrame `json:"frames"`
		}
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("bramble: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			atlas.addFrames(tex.Frames, i)
		}
	case probe.Frames != nil:
		var frames map[string]atlasFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("bramble: failed to parse atlas frames: %w", err)
		}
		atlas.addFrames(frames, 0)
	default:
		return nil, fmt.Errorf("bramble: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type atlasRect struct {
	X, Y, W, H int
}

type atlasFrame struct {
	Frame            atlasRect `json:"frame"`
	Rotated          bool      `json:"rotated"`
	SpriteSourceSize atlasRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W, H int
	} `json:"sourceSize"`
}

func (a *Atlas) addFrames(frames map[string]atlasFrame, page int) {
	for name, f := range frames {
		a.regions[name] = TextureRegion{
			Page:         page,
			X:            f.Frame.X,
			Y:            f.Frame.Y,
			Width:        f.Frame.W,
			Height:       f.Frame.H,
			SourceWidth:  f.SourceSize.W,
			SourceHeight: f.SourceSize.H,
			OffsetX:      f.SpriteSourceSize.X,
			OffsetY:      f.SpriteSourceSize.Y,
			Rotated:      f.Rotated,
		}
	}
}
