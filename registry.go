package bramble

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

var (
	// ErrUnknownComponent is wrapped by parse errors for tags with no registered type.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrMissingAttribute is wrapped when a required attribute or element is absent.
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrUnknownTemplate is wrapped when a template reference has no definition.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrMissingParameter is wrapped when a template uses {{name}} without a value.
	ErrMissingParameter = errors.New("missing template parameter")
)

// ParseError reports a malformed template document. Path names the element,
// Attribute the offending property when there is one.
type ParseError struct {
	Path      string
	Attribute string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("bramble: %s: property %q: %v", e.Path, e.Attribute, e.Err)
	}
	return fmt.Sprintf("bramble: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Factory creates a component for a template element. It may read the
// attributes listed in ComponentType.Consumes.
type Factory func(e *xmlquery.Node, ctx *ParseContext) (*Component, error)

// PropertySetter applies a textual property value to c.
type PropertySetter func(c *Component, value string, ctx *ParseContext) error

// ElementHandler applies a property given as a child element with structure
// of its own (dropdown entries, insets by side).
type ElementHandler func(c *Component, e *xmlquery.Node, ctx *ParseContext) error

// ComponentType describes one template tag.
type ComponentType struct {
	Factory    Factory
	Properties map[string]PropertySetter
	Elements   map[string]ElementHandler
	// Consumes lists attributes read by Factory; they are not applied again.
	Consumes []string
}

func (t *ComponentType) consumes(name string) bool {
	for _, n := range t.Consumes {
		if n == name {
			return true
		}
	}
	return false
}

// Registry maps tag names to component types. Properties shared by every
// component live in the common table; kind-specific ones override them.
type Registry struct {
	types          map[string]*ComponentType
	common         map[string]PropertySetter
	commonElements map[string]ElementHandler
}

// NewRegistry returns a registry with every built-in component registered.
func NewRegistry() *Registry {
	r := &Registry{
		types:          make(map[string]*ComponentType),
		common:         commonProperties(),
		commonElements: map[string]ElementHandler{"margins": insetsElement(false), "padding": insetsElement(true)},
	}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the type for tag.
func (r *Registry) Register(tag string, t *ComponentType) {
	if t == nil || t.Factory == nil {
		panic("bramble: component type for " + tag + " needs a factory")
	}
	r.types[tag] = t
}

// Alias makes alias resolve to the type registered for tag.
func (r *Registry) Alias(alias, tag string) {
	if t, ok := r.types[tag]; ok {
		r.types[alias] = t
	}
}

// Lookup returns the type registered for tag.
func (r *Registry) Lookup(tag string) (*ComponentType, bool) {
	t, ok := r.types[tag]
	return t, ok
}

// Tags returns every registered tag in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.types))
	for t := range r.types {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func (r *Registry) setter(t *ComponentType, name string) (PropertySetter, bool) {
	if fn, ok := t.Properties[name]; ok {
		return fn, true
	}
	fn, ok := r.common[name]
	return fn, ok
}

func (r *Registry) element(t *ComponentType, name string) (ElementHandler, bool) {
	if fn, ok := t.Elements[name]; ok {
		return fn, true
	}
	fn, ok := r.commonElements[name]
	return fn, ok
}

func commonProperties() map[string]PropertySetter {
	return map[string]PropertySetter{
		"sizing": func(c *Component, v string, _ *ParseContext) error {
			h, vert, err := ParseSizingPair(v)
			if err != nil {
				return err
			}
			c.HorizontalSizing, c.VerticalSizing = h, vert
			return nil
		},
		"horizontal-sizing": func(c *Component, v string, _ *ParseContext) error {
			sz, err := ParseSizing(v)
			c.HorizontalSizing = orKeep(c.HorizontalSizing, sz, err)
			return err
		},
		"vertical-sizing": func(c *Component, v string, _ *ParseContext) error {
			sz, err := ParseSizing(v)
			c.VerticalSizing = orKeep(c.VerticalSizing, sz, err)
			return err
		},
		"margins": func(c *Component, v string, _ *ParseContext) error {
			in, err := ParseInsets(v)
			c.Margins = orKeep(c.Margins, in, err)
			return err
		},
		"padding": func(c *Component, v string, _ *ParseContext) error {
			in, err := ParseInsets(v)
			c.Padding = orKeep(c.Padding, in, err)
			return err
		},
		"positioning": func(c *Component, v string, _ *ParseContext) error {
			p, err := ParsePositioning(v)
			c.Positioning = orKeep(c.Positioning, p, err)
			return err
		},
		"z-index": func(c *Component, v string, _ *ParseContext) error {
			n, err := parseInt(v)
			c.ZIndex = orKeep(c.ZIndex, n, err)
			return err
		},
		"tooltip-text": func(c *Component, v string, _ *ParseContext) error {
			c.Tooltip = strings.TrimSpace(v)
			return nil
		},
		"cursor-style": func(c *Component, v string, _ *ParseContext) error {
			cs, err := ParseCursor(v)
			c.Cursor = orKeep(c.Cursor, cs, err)
			return err
		},
		"surface": func(c *Component, v string, _ *ParseContext) error {
			b, err := ParseSurface(v)
			if err != nil {
				return err
			}
			c.Background = b
			return nil
		},
		"gap": func(c *Component, v string, _ *ParseContext) error {
			n, err := parseInt(v)
			c.Gap = orKeep(c.Gap, n, err)
			return err
		},
		"horizontal-alignment": func(c *Component, v string, _ *ParseContext) error {
			a, err := ParseAlignment(v)
			c.HorizontalAlignment = orKeep(c.HorizontalAlignment, a, err)
			return err
		},
		"vertical-alignment": func(c *Component, v string, _ *ParseContext) error {
			a, err := ParseAlignment(v)
			c.VerticalAlignment = orKeep(c.VerticalAlignment, a, err)
			return err
		},
		"allow-overflow": boolProperty(func(c *Component) *bool { return &c.AllowOverflow }),
		"visible":        boolProperty(func(c *Component) *bool { return &c.Visible }),
		"interactable":   boolProperty(func(c *Component) *bool { return &c.Interactable }),
		"focusable":      boolProperty(func(c *Component) *bool { return &c.Focusable }),
	}
}

// orKeep returns v unless err is set, in which case old is kept.
func orKeep[T any](old, v T, err error) T {
	if err != nil {
		return old
	}
	return v
}

func boolProperty(field func(c *Component) *bool) PropertySetter {
	return func(c *Component, v string, _ *ParseContext) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// insetsElement accepts either text ("4", "2 4") or per-side child elements
// such as <top>2</top><horizontal>4</horizontal>.
func insetsElement(padding bool) ElementHandler {
	return func(c *Component, e *xmlquery.Node, ctx *ParseContext) error {
		in := c.Margins
		if padding {
			in = c.Padding
		}
		sides := childElements(e)
		if len(sides) == 0 {
			text, err := ctx.Text(e)
			if err != nil {
				return err
			}
			if in, err = ParseInsets(text); err != nil {
				return err
			}
		}
		for _, side := range sides {
			text, err := ctx.Text(side)
			if err != nil {
				return err
			}
			n, err := parseInt(text)
			if err != nil {
				return err
			}
			switch side.Data {
			case "top":
				in.Top = n
			case "bottom":
				in.Bottom = n
			case "left":
				in.Left = n
			case "right":
				in.Right = n
			case "vertical":
				in.Top, in.Bottom = n, n
			case "horizontal":
				in.Left, in.Right = n, n
			case "all":
				in = InsetsAll(n)
			default:
				ctx.Warn("unknown side <%s> in <%s>", side.Data, e.Data)
			}
		}
		if padding {
			c.Padding = in
		} else {
			c.Margins = in
		}
		return nil
	}
}

func registerBuiltins(r *Registry) {
	r.Register("flow-layout", &ComponentType{
		Consumes: []string{"direction"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			dir, err := ctx.RequireAttr(e, "direction")
			if err != nil {
				return nil, err
			}
			a, err := parseDirection(dir)
			if err != nil {
				return nil, ctx.errorAt("direction", err)
			}
			if a == AxisHorizontal {
				return HorizontalFlow(Content(0), Content(0)), nil
			}
			return VerticalFlow(Content(0), Content(0)), nil
		},
	})
	r.Register("stack-layout", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return Stack(Content(0), Content(0)), nil
		},
	})
	r.Register("grid-layout", &ComponentType{
		Consumes: []string{"rows", "columns"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			rows, err := ctx.requireInt(e, "rows")
			if err != nil {
				return nil, err
			}
			cols, err := ctx.requireInt(e, "columns")
			if err != nil {
				return nil, err
			}
			if rows < 1 || cols < 1 {
				return nil, ctx.errorAt("rows", fmt.Errorf("grid needs at least one row and one column, got %dx%d", rows, cols))
			}
			return Grid(Content(0), Content(0), rows, cols), nil
		},
		Properties: map[string]PropertySetter{
			"row-sizing": func(c *Component, v string, _ *ParseContext) error {
				list, err := parseSizingList(v)
				if err == nil {
					c.Layout.(*GridLayout).RowSizing = list
				}
				return err
			},
			"column-sizing": func(c *Component, v string, _ *ParseContext) error {
				list, err := parseSizingList(v)
				if err == nil {
					c.Layout.(*GridLayout).ColumnSizing = list
				}
				return err
			},
		},
	})
	r.Register("scroll", &ComponentType{
		Consumes: []string{"direction"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			dir, err := ctx.RequireAttr(e, "direction")
			if err != nil {
				return nil, err
			}
			a, err := parseDirection(dir)
			if err != nil {
				return nil, ctx.errorAt("direction", err)
			}
			if a == AxisHorizontal {
				return HorizontalScroll(Content(0), Content(0), nil), nil
			}
			return VerticalScroll(Content(0), Content(0), nil), nil
		},
		Properties: map[string]PropertySetter{
			"scrollbar-thickness": func(c *Component, v string, _ *ParseContext) error {
				n, err := parseInt(v)
				if err == nil {
					c.Layout.(*ScrollLayout).ScrollbarThickness = n
				}
				return err
			},
			"scrollbar-color": func(c *Component, v string, _ *ParseContext) error {
				col, err := ParseColor(v)
				if err == nil {
					c.Layout.(*ScrollLayout).ScrollbarColor = col
				}
				return err
			},
			"scroll-step": func(c *Component, v string, _ *ParseContext) error {
				n, err := parseInt(v)
				if err == nil {
					c.Layout.(*ScrollLayout).Step = n
				}
				return err
			},
		},
	})
	r.Register("draggable", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return Draggable(Content(0), Content(0), nil), nil
		},
		Properties: map[string]PropertySetter{
			"forehead-size": func(c *Component, v string, _ *ParseContext) error {
				n, err := parseInt(v)
				if err == nil {
					c.Layout.(*DraggableLayout).ForeheadSize = n
					c.Padding.Top = n
				}
				return err
			},
		},
	})
	r.Register("collapsible", &ComponentType{
		Consumes: []string{"title"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			title, err := ctx.RequireAttr(e, "title")
			if err != nil {
				return nil, err
			}
			return Collapsible(Content(0), Content(0), title, true), nil
		},
		Properties: map[string]PropertySetter{
			"expanded": func(c *Component, v string, _ *ParseContext) error {
				b, err := parseBool(v)
				if err == nil {
					c.Layout.(*CollapsibleLayout).SetExpanded(b)
				}
				return err
			},
		},
	})
	r.Register("overlay", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return Overlay(nil), nil
		},
		Properties: map[string]PropertySetter{
			"close-on-click": func(c *Component, v string, _ *ParseContext) error {
				b, err := parseBool(v)
				if err == nil {
					c.Layout.(*OverlayLayout).CloseOnClick = b
				}
				return err
			},
		},
	})
	r.Register("render-effect", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return RenderEffects(nil), nil
		},
		Properties: map[string]PropertySetter{
			"rotate": effectProperty(func(v string) (RenderEffect, error) {
				deg, err := parseFloat(v)
				return RotateEffect{Degrees: deg}, err
			}),
			"scale": effectProperty(func(v string) (RenderEffect, error) {
				x, y, err := parseFloatPair(v)
				return ScaleEffect{X: x, Y: y}, err
			}),
			"translate": effectProperty(func(v string) (RenderEffect, error) {
				x, y, err := parseFloatPair(v)
				return TranslateEffect{X: x, Y: y}, err
			}),
			"tint": effectProperty(func(v string) (RenderEffect, error) {
				col, err := ParseColor(v)
				return TintEffect{Color: col}, err
			}),
		},
	})
	r.Register("label", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewLabel(""), nil
		},
		Properties: labelProperties(func(c *Component) *LabelContent { return c.Label() }),
	})
	r.Register("box", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewBox(Content(0), Content(0), ColorWhite, false), nil
		},
		Properties: map[string]PropertySetter{
			"color": func(c *Component, v string, _ *ParseContext) error {
				col, err := ParseColor(v)
				if err == nil {
					c.Content.(*BoxContent).Color = col
				}
				return err
			},
			"fill": func(c *Component, v string, _ *ParseContext) error {
				b, err := parseBool(v)
				if err == nil {
					c.Content.(*BoxContent).Filled = b
				}
				return err
			},
		},
	})
	r.Register("sprite", &ComponentType{
		Consumes: []string{"atlas", "region"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			atlasName, err := ctx.RequireAttr(e, "atlas")
			if err != nil {
				return nil, err
			}
			region, err := ctx.RequireAttr(e, "region")
			if err != nil {
				return nil, err
			}
			atlas, ok := ctx.Resources.Atlas(atlasName)
			if !ok {
				return nil, ctx.errorAt("atlas", fmt.Errorf("no atlas named %q", atlasName))
			}
			c, ok := NewSprite(atlas, region)
			if !ok {
				return nil, ctx.errorAt("region", fmt.Errorf("atlas %q has no region %q", atlasName, region))
			}
			return c, nil
		},
		Properties: map[string]PropertySetter{
			"tint": func(c *Component, v string, _ *ParseContext) error {
				col, err := ParseColor(v)
				if err == nil {
					c.Content.(*SpriteContent).Tint = col
				}
				return err
			},
		},
	})
	r.Register("texture", &ComponentType{
		Consumes: []string{"image"},
		Factory: func(e *xmlquery.Node, ctx *ParseContext) (*Component, error) {
			name, err := ctx.RequireAttr(e, "image")
			if err != nil {
				return nil, err
			}
			img, ok := ctx.Resources.Image(name)
			if !ok {
				return nil, ctx.errorAt("image", fmt.Errorf("no image named %q", name))
			}
			return NewTexture(img, img.Bounds()), nil
		},
		Properties: map[string]PropertySetter{
			"region": func(c *Component, v string, _ *ParseContext) error {
				n, err := parseInts(v)
				if err != nil {
					return err
				}
				if len(n) != 4 || n[2] < 0 || n[3] < 0 {
					return fmt.Errorf("invalid region %q: want x, y, width, height", v)
				}
				c.Content.(*TextureContent).Src = image.Rect(n[0], n[1], n[0]+n[2], n[1]+n[3])
				return nil
			},
			"tint": func(c *Component, v string, _ *ParseContext) error {
				col, err := ParseColor(v)
				if err == nil {
					c.Content.(*TextureContent).Tint = col
				}
				return err
			},
		},
	})
	buttonProps := labelProperties(func(c *Component) *LabelContent { return &c.Button().LabelContent })
	buttonProps["active"] = func(c *Component, v string, _ *ParseContext) error {
		b, err := parseBool(v)
		if err == nil {
			c.Button().Active = b
		}
		return err
	}
	r.Register("button", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewButton("", nil), nil
		},
		Properties: buttonProps,
	})
	checkboxProps := labelProperties(func(c *Component) *LabelContent { return &c.Checkbox().LabelContent })
	checkboxProps["checked"] = func(c *Component, v string, _ *ParseContext) error {
		b, err := parseBool(v)
		if err == nil {
			c.Checkbox().Checked = b
		}
		return err
	}
	r.Register("checkbox", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewCheckbox("", false), nil
		},
		Properties: checkboxProps,
	})
	r.Register("text-box", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewTextBox(Fixed(100), ""), nil
		},
		Properties: map[string]PropertySetter{
			"text": func(c *Component, v string, _ *ParseContext) error {
				c.TextBox().SetText(v)
				return nil
			},
			"placeholder": func(c *Component, v string, _ *ParseContext) error {
				c.TextBox().Placeholder = v
				return nil
			},
			"max-length": func(c *Component, v string, _ *ParseContext) error {
				n, err := parseInt(v)
				if err == nil {
					c.TextBox().MaxLength = n
				}
				return err
			},
		},
	})
	r.Register("dropdown", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return Dropdown(Content(0)), nil
		},
		Properties: map[string]PropertySetter{
			"requires-hover": func(c *Component, v string, _ *ParseContext) error {
				b, err := parseBool(v)
				if err == nil {
					c.Dropdown().RequiresHover = b
				}
				return err
			},
		},
		Elements: map[string]ElementHandler{
			"entries": func(c *Component, e *xmlquery.Node, ctx *ParseContext) error {
				return parseDropdownEntries(c.Dropdown(), e, ctx)
			},
		},
	})
	r.Register("fps-label", &ComponentType{
		Factory: func(*xmlquery.Node, *ParseContext) (*Component, error) {
			return NewFPSLabel(), nil
		},
	})
}

func labelProperties(label func(c *Component) *LabelContent) map[string]PropertySetter {
	return map[string]PropertySetter{
		"text": func(c *Component, v string, _ *ParseContext) error {
			label(c).Text = strings.TrimSpace(v)
			return nil
		},
		"color": func(c *Component, v string, _ *ParseContext) error {
			col, err := ParseColor(v)
			if err == nil {
				label(c).Color = col
			}
			return err
		},
		"shadow": func(c *Component, v string, _ *ParseContext) error {
			b, err := parseBool(v)
			if err == nil {
				label(c).Shadow = b
			}
			return err
		},
		"max-width": func(c *Component, v string, _ *ParseContext) error {
			n, err := parseInt(v)
			if err == nil {
				label(c).MaxWidth = n
			}
			return err
		},
		"text-align": func(c *Component, v string, _ *ParseContext) error {
			a, err := parseTextAlign(v)
			if err == nil {
				label(c).Align = a
			}
			return err
		},
		"font": func(c *Component, v string, ctx *ParseContext) error {
			name := strings.TrimSpace(v)
			f, ok := ctx.Resources.Font(name)
			if !ok {
				return fmt.Errorf("no font named %q", name)
			}
			label(c).Font = f
			return nil
		},
	}
}

func effectProperty(parse func(v string) (RenderEffect, error)) PropertySetter {
	return func(c *Component, v string, _ *ParseContext) error {
		eff, err := parse(v)
		if err != nil {
			return err
		}
		l := c.Layout.(*EffectLayout)
		l.Effects = append(l.Effects, eff)
		return nil
	}
}

// parseFloatPair parses "x y" or a single value used for both.
func parseFloatPair(v string) (float64, float64, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	switch len(fields) {
	case 1:
		f, err := parseFloat(fields[0])
		return f, f, err
	case 2:
		x, err := parseFloat(fields[0])
		if err != nil {
			return 0, 0, err
		}
		y, err := parseFloat(fields[1])
		return x, y, err
	}
	return 0, 0, fmt.Errorf("invalid pair %q", v)
}

// parseDropdownEntries fills d from <divider/>, <text>, <button>, <checkbox>
// and <nested name="..."> elements.
func parseDropdownEntries(d *DropdownLayout, e *xmlquery.Node, ctx *ParseContext) error {
	for i, entry := range childElements(e) {
		ctx.push(fmt.Sprintf("%s[%d]", entry.Data, i))
		err := parseDropdownEntry(d, entry, ctx)
		ctx.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func parseDropdownEntry(d *DropdownLayout, entry *xmlquery.Node, ctx *ParseContext) error {
	switch entry.Data {
	case "divider":
		d.Divider()
	case "text":
		text, err := ctx.Text(entry)
		if err != nil {
			return err
		}
		d.Text(text)
	case "button":
		text, err := ctx.textOf(entry, "text")
		if err != nil {
			return err
		}
		d.Button(text, func(*Component) {})
	case "checkbox":
		text, err := ctx.textOf(entry, "text")
		if err != nil {
			return err
		}
		raw, err := ctx.textOf(entry, "checked")
		if err != nil {
			return err
		}
		checked, err := parseBool(raw)
		if err != nil {
			return ctx.errorAt("checked", err)
		}
		d.Checkbox(text, checked, func(bool) {})
	case "nested":
		name, err := ctx.RequireAttr(entry, "name")
		if err != nil {
			return err
		}
		var nestedErr error
		d.Nested(name, Content(0), func(sub *DropdownLayout) {
			nestedErr = parseDropdownEntries(sub, entry, ctx)
		})
		return nestedErr
	default:
		ctx.Warn("unknown dropdown entry <%s>", entry.Data)
	}
	return nil
}
