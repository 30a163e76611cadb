package bramble

import "math"

// RenderEffect transforms the surface around a container's children. Setup
// runs after the surface state is pushed; Cleanup runs before it is popped.
// Effects change drawing only; hit testing uses the untransformed layout.
type RenderEffect interface {
	Setup(c *Component, s Surface)
	Cleanup(c *Component, s Surface)
}

// RotateEffect rotates the children around the container's center.
type RotateEffect struct{ Degrees float64 }

func (r RotateEffect) Setup(c *Component, s Surface) {
	cx := float64(c.X) + float64(c.Width)/2
	cy := float64(c.Y) + float64(c.Height)/2
	s.Translate(cx, cy)
	s.Rotate(r.Degrees * math.Pi / 180)
	s.Translate(-cx, -cy)
}

func (RotateEffect) Cleanup(*Component, Surface) {}

// ScaleEffect scales the children around the container's top-left corner.
type ScaleEffect struct{ X, Y float64 }

func (e ScaleEffect) Setup(c *Component, s Surface) {
	s.Translate(float64(c.X), float64(c.Y))
	s.Scale(e.X, e.Y)
	s.Translate(-float64(c.X), -float64(c.Y))
}

func (ScaleEffect) Cleanup(*Component, Surface) {}

// TranslateEffect offsets the children.
type TranslateEffect struct{ X, Y float64 }

func (e TranslateEffect) Setup(_ *Component, s Surface) { s.Translate(e.X, e.Y) }

func (TranslateEffect) Cleanup(*Component, Surface) {}

// TintEffect multiplies the children's colors.
type TintEffect struct{ Color Color }

func (e TintEffect) Setup(_ *Component, s Surface) { s.MultiplyTint(e.Color) }

func (TintEffect) Cleanup(*Component, Surface) {}

// EffectLayout stacks its children and applies Effects around their drawing.
type EffectLayout struct {
	StackLayout
	Effects []RenderEffect
}

// RenderEffects wraps child in a container that applies effects when drawing.
func RenderEffects(child *Component, effects ...RenderEffect) *Component {
	c := NewComponent("render-effect")
	c.Layout = &EffectLayout{Effects: effects}
	c.AllowOverflow = true
	if child != nil {
		c.AddChild(child)
	}
	return c
}

func (l *EffectLayout) beforeChildren(c *Component, s Surface) {
	for _, e := range l.Effects {
		e.Setup(c, s)
	}
}

func (l *EffectLayout) afterChildren(c *Component, s Surface) {
	for i := len(l.Effects) - 1; i >= 0; i-- {
		l.Effects[i].Cleanup(c, s)
	}
}
