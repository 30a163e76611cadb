package bramble

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation tweens up to four values of a component and writes them back each
// frame. Create one with the Animate* constructors and either call Update
// yourself or hand it to Screen.Animate. If the target is disposed the
// animation stops immediately.
type Animation struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float64)
	target *Component
	Done   bool

	onDone []func()
}

// OnDone registers fn to run once when the animation finishes.
func (a *Animation) OnDone(fn func()) *Animation {
	a.onDone = append(a.onDone, fn)
	return a
}

// Update advances all tweens by dt seconds, applies the values and schedules
// a relayout of the target.
func (a *Animation) Update(dt float32) {
	if a.Done {
		return
	}
	if a.target != nil && a.target.IsDisposed() {
		a.Done = true
		return
	}
	var vals [4]float64
	allDone := true
	for i := 0; i < a.count; i++ {
		v, finished := a.tweens[i].Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	a.apply(vals)
	if a.target != nil {
		a.target.MarkDirty()
	}
	if allDone {
		a.Done = true
		for _, fn := range a.onDone {
			fn()
		}
	}
}

func newAnimation(target *Component, duration float32, fn ease.TweenFunc, from, to []float64, apply func([4]float64)) *Animation {
	a := &Animation{count: len(from), target: target, apply: apply}
	for i := range from {
		a.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return a
}

func roundPx(v float64) int { return int(math.Round(v)) }

// AnimateSizing tweens the sizing value of one axis towards to. When the
// methods differ the animation starts from the component's current extent
// expressed in to's method, so a content-sized panel can grow to fixed(200).
func AnimateSizing(c *Component, axis Axis, to Sizing, duration float32, fn ease.TweenFunc) *Animation {
	from := c.sizing(axis)
	start := float64(from.Value)
	if from.Method != to.Method {
		start = float64(rectExtent(c.Bounds(), axis))
		if to.IsFill() {
			start = float64(to.Value)
		}
	}
	return newAnimation(c, duration, fn, []float64{start}, []float64{float64(to.Value)}, func(v [4]float64) {
		s := Sizing{Method: to.Method, Value: roundPx(v[0])}
		if axis == AxisHorizontal {
			c.HorizontalSizing = s
		} else {
			c.VerticalSizing = s
		}
	})
}

func insetValues(in Insets) []float64 {
	return []float64{float64(in.Top), float64(in.Bottom), float64(in.Left), float64(in.Right)}
}

func insetsFrom(v [4]float64) Insets {
	return Insets{Top: roundPx(v[0]), Bottom: roundPx(v[1]), Left: roundPx(v[2]), Right: roundPx(v[3])}
}

// AnimateMargins tweens all four margins.
func AnimateMargins(c *Component, to Insets, duration float32, fn ease.TweenFunc) *Animation {
	return newAnimation(c, duration, fn, insetValues(c.Margins), insetValues(to), func(v [4]float64) {
		c.Margins = insetsFrom(v)
	})
}

// AnimatePadding tweens all four paddings.
func AnimatePadding(c *Component, to Insets, duration float32, fn ease.TweenFunc) *Animation {
	return newAnimation(c, duration, fn, insetValues(c.Padding), insetValues(to), func(v [4]float64) {
		c.Padding = insetsFrom(v)
	})
}

// AnimatePositioning tweens the positioning offsets, keeping to's type.
func AnimatePositioning(c *Component, to Positioning, duration float32, fn ease.TweenFunc) *Animation {
	from := []float64{float64(c.Positioning.X), float64(c.Positioning.Y)}
	return newAnimation(c, duration, fn, from, []float64{float64(to.X), float64(to.Y)}, func(v [4]float64) {
		c.Positioning = Positioning{Type: to.Type, X: roundPx(v[0]), Y: roundPx(v[1])}
	})
}

// AnimateBackground tweens the background fill color. A component without a
// background starts from transparent.
func AnimateBackground(c *Component, to Color, duration float32, fn ease.TweenFunc) *Animation {
	if c.Background == nil {
		c.Background = &Background{}
	} else {
		b := *c.Background
		c.Background = &b // shared presets must not be mutated
	}
	bg := c.Background
	from := []float64{bg.Fill.R, bg.Fill.G, bg.Fill.B, bg.Fill.A}
	return newAnimation(c, duration, fn, from, []float64{to.R, to.G, to.B, to.A}, func(v [4]float64) {
		bg.Fill = Color{R: v[0], G: v[1], B: v[2], A: v[3]}
	})
}

// Animate registers a for per-frame updates. It is dropped once done.
func (s *Screen) Animate(a *Animation) *Animation {
	s.animations = append(s.animations, a)
	return a
}

func (s *Screen) updateAnimations(dt float64) {
	if len(s.animations) == 0 {
		return
	}
	kept := s.animations[:0]
	for _, a := range s.animations {
		a.Update(float32(dt))
		if !a.Done {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.animations); i++ {
		s.animations[i] = nil
	}
	s.animations = kept
}
