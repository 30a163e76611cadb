package bramble

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SizingMethod selects how one axis of a component is resolved.
type SizingMethod uint8

const (
	// SizingContent derives the extent from the component's content plus
	// padding plus an optional allowance.
	SizingContent SizingMethod = iota
	// SizingFixed uses an exact pixel extent.
	SizingFixed
	// SizingFill takes a weighted share of the space left over by siblings.
	SizingFill
)

// Sizing is a per-axis sizing intent. Value is the pixel extent for Fixed,
// the extra allowance for Content and the weight for Fill.
type Sizing struct {
	Method SizingMethod
	Value  int
}

// Fixed returns a fixed sizing of px pixels.
func Fixed(px int) Sizing { return Sizing{Method: SizingFixed, Value: px} }

// Content returns a content sizing with an extra allowance of pad pixels.
func Content(pad int) Sizing { return Sizing{Method: SizingContent, Value: pad} }

// Fill returns a fill sizing with the given weight. Weights below one count as one.
func Fill(weight int) Sizing { return Sizing{Method: SizingFill, Value: weight} }

// IsFixed reports whether s is a Fixed sizing.
func (s Sizing) IsFixed() bool   { return s.Method == SizingFixed }
// IsContent reports whether s is a Content sizing.
func (s Sizing) IsContent() bool { return s.Method == SizingContent }
// IsFill reports whether s is a Fill sizing.
func (s Sizing) IsFill() bool    { return s.Method == SizingFill }

func (s Sizing) weight() int {
	if s.Value < 1 {
		return 1
	}
	return s.Value
}

// String returns the template form: "fixed(20)", "content", "content(4)",
// "fill" or "fill(2)".
func (s Sizing) String() string {
	switch s.Method {
	case SizingFixed:
		return "fixed(" + strconv.Itoa(s.Value) + ")"
	case SizingFill:
		if s.Value <= 1 {
			return "fill"
		}
		return "fill(" + strconv.Itoa(s.Value) + ")"
	default:
		if s.Value == 0 {
			return "content"
		}
		return "content(" + strconv.Itoa(s.Value) + ")"
	}
}

// ParseSizing parses the String form of a Sizing.
func ParseSizing(s string) (Sizing, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	name, arg, hasArg := s, "", false
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Sizing{}, fmt.Errorf("bramble: malformed sizing %q", s)
		}
		name = strings.TrimSpace(s[:open])
		arg = strings.TrimSpace(s[open+1 : len(s)-1])
		hasArg = true
	}
	var v int
	if hasArg {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return Sizing{}, fmt.Errorf("bramble: malformed sizing %q", s)
		}
		v = n
	}
	switch name {
	case "fixed":
		if !hasArg {
			return Sizing{}, fmt.Errorf("bramble: fixed sizing %q needs a pixel value", s)
		}
		return Fixed(v), nil
	case "content":
		return Content(v), nil
	case "fill":
		if !hasArg {
			v = 1
		}
		return Fill(v), nil
	}
	return Sizing{}, fmt.Errorf("bramble: unknown sizing method %q", name)
}

// ErrAmbiguousSizing is wrapped by configuration errors where a Fill child
// depends on a parent whose extent depends on its children.
var ErrAmbiguousSizing = errors.New("ambiguous sizing")

// ConfigError reports an invalid component tree configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return "bramble: " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel, such as ErrAmbiguousSizing.
func (e *ConfigError) Unwrap() error { return e.Err }

func ambiguousFill(parent, child *Component, a Axis) error {
	return &ConfigError{
		Path: child.Path(),
		Err: fmt.Errorf("%w: fill %s sizing inside %s whose %s extent depends on its children",
			ErrAmbiguousSizing, a, parent.Kind, a),
	}
}

// DistributeFill splits remaining pixels among fill siblings in proportion to
// their weights. Each share is floored; the pixels lost to flooring all go to
// the last sibling so that the shares always sum to remaining.
func DistributeFill(remaining int, weights []int) []int {
	shares := make([]int, len(weights))
	if len(weights) == 0 || remaining <= 0 {
		return shares
	}
	total := 0
	for _, w := range weights {
		total += max(w, 1)
	}
	used := 0
	for i, w := range weights {
		shares[i] = remaining * max(w, 1) / total
		used += shares[i]
	}
	shares[len(shares)-1] += remaining - used
	return shares
}

// Resolve computes the outer size (excluding margins) of c for the given
// available space. Resolution has no side effects, so calling it twice with
// the same space yields the same size.
func Resolve(c *Component, space Space) (Size, error) {
	w, err := resolveAxis(c, AxisHorizontal, space)
	if err != nil {
		return Size{}, err
	}
	h, err := resolveAxis(c, AxisVertical, space)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: w, Height: h}, nil
}

func resolveAxis(c *Component, a Axis, space Space) (int, error) {
	sz := c.sizing(a)
	avail := space.axis(a)
	switch sz.Method {
	case SizingFixed:
		return max(sz.Value, 0), nil
	case SizingFill:
		if avail == Unbounded {
			return 0, &ConfigError{
				Path: c.Path(),
				Err:  fmt.Errorf("%w: fill %s sizing with unbounded space", ErrAmbiguousSizing, a),
			}
		}
		return max(avail, 0), nil
	}
	inner := innerSpace(c, space)
	n := 0
	if c.Layout != nil {
		m, err := c.Layout.Measure(c, a, inner)
		if err != nil {
			return 0, err
		}
		n = m
	}
	if c.Content != nil {
		n = max(n, c.Content.ContentSize(c, inner).axis(a))
	}
	return n + c.Padding.axis(a) + sz.Value, nil
}

// innerSpace is the space offered to c's content: the known extent minus
// padding on axes whose size does not depend on the content, unbounded
// otherwise.
func innerSpace(c *Component, space Space) Space {
	var inner Space
	for _, a := range [2]Axis{AxisHorizontal, AxisVertical} {
		sz := c.sizing(a)
		v := Unbounded
		switch {
		case sz.IsFixed():
			v = max(0, sz.Value-c.Padding.axis(a))
		case sz.IsFill() && space.axis(a) != Unbounded:
			v = max(0, space.axis(a)-c.Padding.axis(a))
		case sz.IsContent() && space.axis(a) != Unbounded:
			// Content may still wrap to the offered space (labels).
			v = max(0, space.axis(a)-c.Padding.axis(a)-sz.Value)
		}
		inner = inner.withAxis(a, v)
	}
	return inner
}

// axisUnbounder is implemented by layouts that offer their children unbounded
// space along an axis (scroll containers).
type axisUnbounder interface {
	unboundedAxis() (Axis, bool)
}

// layoutValidator is implemented by layouts with sizing rules of their own
// that Validate has to check up front.
type layoutValidator interface {
	validate(c *Component) error
}

// Validate walks the tree and reports the first sizing configuration that
// cannot be resolved: a Fill child along an axis where its parent is
// content-sized or lays children out unbounded, or a Fill grid track in a
// content-sized grid.
func Validate(root *Component) error {
	if root == nil {
		return nil
	}
	if v, ok := root.Layout.(layoutValidator); ok {
		if err := v.validate(root); err != nil {
			return err
		}
	}
	if root.Layout != nil {
		for _, a := range [2]Axis{AxisHorizontal, AxisVertical} {
			dependent := root.sizing(a).IsContent()
			if u, ok := root.Layout.(axisUnbounder); ok {
				if ua, on := u.unboundedAxis(); on && ua == a {
					dependent = true
				}
			}
			if !dependent {
				continue
			}
			for _, ch := range root.children {
				// Positioned children resolve against the final content rect.
				if ch.Positioning.Type == PositionLayout && ch.sizing(a).IsFill() {
					return ambiguousFill(root, ch, a)
				}
			}
		}
	}
	for _, ch := range root.children {
		if err := Validate(ch); err != nil {
			return err
		}
	}
	return nil
}
