package bramble

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteContent draws a named atlas region. Its intrinsic size is the
// region's untrimmed size.
type SpriteContent struct {
	Atlas  *Atlas
	Region TextureRegion
	Tint   Color
}

// NewSprite creates a sprite for the named region. ok is false when the
// atlas has no such region.
func NewSprite(atlas *Atlas, name string) (c *Component, ok bool) {
	region, ok := atlas.Region(name)
	c = NewComponent("sprite")
	c.Content = &SpriteContent{Atlas: atlas, Region: region, Tint: ColorWhite}
	return c, ok
}

func (sp *SpriteContent) ContentSize(*Component, Space) Size {
	w, h := sp.Region.SourceWidth, sp.Region.SourceHeight
	if w == 0 || h == 0 {
		w, h = sp.Region.Width, sp.Region.Height
	}
	return Size{Width: w, Height: h}
}

func (sp *SpriteContent) Draw(c *Component, s Surface, _ *DrawContext) {
	page := sp.Atlas.Page(sp.Region)
	if page == nil {
		return
	}
	r := c.ContentRect()
	full := sp.ContentSize(c, Space{})
	if full.Width == 0 || full.Height == 0 {
		return
	}
	sx := float64(r.Width) / float64(full.Width)
	sy := float64(r.Height) / float64(full.Height)
	dst := Rect{
		X:      r.X + int(math.Round(float64(sp.Region.OffsetX)*sx)),
		Y:      r.Y + int(math.Round(float64(sp.Region.OffsetY)*sy)),
		Width:  int(math.Round(float64(sp.Region.Width) * sx)),
		Height: int(math.Round(float64(sp.Region.Height) * sy)),
	}
	if !sp.Region.Rotated {
		s.DrawImage(page, sp.Region.Bounds(), dst, sp.Tint)
		return
	}
	// Stored clockwise: draw the page rect rotated back by 90 degrees.
	s.Push()
	s.Translate(float64(dst.X), float64(dst.Bottom()))
	s.Rotate(-math.Pi / 2)
	s.DrawImage(page, sp.Region.Bounds(), Rect{Width: dst.Height, Height: dst.Width}, sp.Tint)
	s.Pop()
}

// TextureContent draws a sub-rectangle of an arbitrary image.
type TextureContent struct {
	Image *ebiten.Image
	Src   image.Rectangle
	Tint  Color
}

// NewTexture creates a component that shows src of img at its natural size.
func NewTexture(img *ebiten.Image, src image.Rectangle) *Component {
	c := NewComponent("texture")
	c.Content = &TextureContent{Image: img, Src: src, Tint: ColorWhite}
	return c
}

func (t *TextureContent) ContentSize(*Component, Space) Size {
	return Size{Width: t.Src.Dx(), Height: t.Src.Dy()}
}

func (t *TextureContent) Draw(c *Component, s Surface, _ *DrawContext) {
	s.DrawImage(t.Image, t.Src, c.ContentRect(), t.Tint)
}
