package bramble

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

// maxTemplateDepth bounds nested template expansion.
const maxTemplateDepth = 16

// ParseOptions configures ParseModel. Zero values use a fresh built-in
// registry and an empty resource set.
type ParseOptions struct {
	Registry  *Registry
	Resources *Resources
}

// Model is a parsed template document: the component tree built from
// <components> and the <templates> available for later expansion.
type Model struct {
	root      *Component
	templates map[string]*xmlquery.Node
	registry  *Registry
	resources *Resources

	// Warnings lists the unknown properties and elements that were skipped.
	Warnings []string
}

// ParseModelString parses a template document held in a string.
func ParseModelString(s string, opts ParseOptions) (*Model, error) {
	return ParseModel(strings.NewReader(s), opts)
}

// ParseModel reads a <bramble> document and builds its component tree.
// Parsing is all-or-nothing: on error no tree is returned. Unknown properties
// are skipped and recorded in Model.Warnings.
func ParseModel(r io.Reader, opts ParseOptions) (*Model, error) {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Resources == nil {
		opts.Resources = NewResources()
	}
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Path: "document", Err: err}
	}
	top := firstElement(doc)
	if top == nil || (top.Data != "bramble" && top.Data != "owo-ui") {
		name := "nothing"
		if top != nil {
			name = "<" + top.Data + ">"
		}
		return nil, &ParseError{Path: "document", Err: fmt.Errorf("root element must be <bramble>, found %s", name)}
	}

	m := &Model{
		templates: make(map[string]*xmlquery.Node),
		registry:  opts.Registry,
		resources: opts.Resources,
	}
	ctx := m.newContext(nil)
	ctx.push(top.Data)

	var components *xmlquery.Node
	for _, sec := range childElements(top) {
		switch sec.Data {
		case "components":
			components = sec
		case "templates":
			if err := m.collectTemplates(sec, ctx); err != nil {
				return nil, err
			}
		default:
			ctx.Warn("unknown section <%s>", sec.Data)
		}
	}
	if components == nil {
		return nil, &ParseError{Path: ctx.Path(), Err: fmt.Errorf("%w: <components>", ErrMissingAttribute)}
	}
	roots := childElements(components)
	if len(roots) != 1 {
		return nil, &ParseError{Path: ctx.Path() + "/components", Err: fmt.Errorf("want exactly one root component, found %d", len(roots))}
	}
	ctx.push("components")
	root, err := ctx.parseComponent(roots[0], nil, 0)
	if err != nil {
		return nil, err
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	m.root = root
	m.takeWarnings(ctx)
	return m, nil
}

func (m *Model) collectTemplates(sec *xmlquery.Node, ctx *ParseContext) error {
	for _, t := range childElements(sec) {
		if t.Data != "template" {
			ctx.Warn("unknown element <%s> in <templates>", t.Data)
			continue
		}
		name := attr(t, "name")
		if name == "" {
			return &ParseError{Path: ctx.Path() + "/templates/template", Attribute: "name", Err: ErrMissingAttribute}
		}
		body := childElements(t)
		if len(body) != 1 {
			return &ParseError{Path: ctx.Path() + "/templates/template#" + name,
				Err: fmt.Errorf("want exactly one component, found %d", len(body))}
		}
		m.templates[name] = body[0]
	}
	return nil
}

func (m *Model) takeWarnings(ctx *ParseContext) {
	for _, w := range ctx.warnings {
		log.Printf("bramble: template warning: %s", w)
	}
	m.Warnings = append(m.Warnings, ctx.warnings...)
}

// Root returns the component tree built from <components>.
func (m *Model) Root() *Component { return m.root }

// FindByID returns the component whose id attribute is id, or nil.
func (m *Model) FindByID(id string) *Component {
	if m.root == nil {
		return nil
	}
	return m.root.FindByName(id)
}

// Templates returns the names of the defined templates in sorted order.
func (m *Model) Templates() []string {
	names := make([]string, 0, len(m.templates))
	for n := range m.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Expand builds a fresh component tree from the named template, substituting
// {{key}} placeholders with params.
func (m *Model) Expand(name string, params map[string]string) (*Component, error) {
	ctx := m.newContext(params)
	ctx.push("template#" + name)
	c, err := ctx.expandTemplate(name, params, nil, 0)
	if err != nil {
		return nil, err
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	m.takeWarnings(ctx)
	return c, nil
}

func (m *Model) newContext(params map[string]string) *ParseContext {
	return &ParseContext{Registry: m.registry, Resources: m.resources, model: m, params: params}
}

// ParseContext carries the state of one parse: the registry and resources
// factories use, template parameters, the element path and warnings.
type ParseContext struct {
	Registry  *Registry
	Resources *Resources

	model    *Model
	params   map[string]string
	path     []string
	warnings []string
}

// Path returns the slash-separated element path of the element being parsed.
func (ctx *ParseContext) Path() string { return strings.Join(ctx.path, "/") }

func (ctx *ParseContext) push(seg string) { ctx.path = append(ctx.path, seg) }
func (ctx *ParseContext) pop()            { ctx.path = ctx.path[:len(ctx.path)-1] }

// Warn records a recoverable problem at the current path.
func (ctx *ParseContext) Warn(format string, args ...any) {
	ctx.warnings = append(ctx.warnings, ctx.Path()+": "+fmt.Sprintf(format, args...))
}

func (ctx *ParseContext) errorAt(attribute string, err error) error {
	return &ParseError{Path: ctx.Path(), Attribute: attribute, Err: err}
}

// substitute replaces {{key}} placeholders with template parameters.
func (ctx *ParseContext) substitute(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "{{")
		if start < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		end := strings.Index(s[start:], "}}")
		if end < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		key := strings.TrimSpace(s[start+2 : start+end])
		v, ok := ctx.params[key]
		if !ok {
			return "", fmt.Errorf("%w %q", ErrMissingParameter, key)
		}
		b.WriteString(s[:start])
		b.WriteString(v)
		s = s[start+end+2:]
	}
}

// Attr returns the substituted value of attribute name and whether it is present.
func (ctx *ParseContext) Attr(e *xmlquery.Node, name string) (string, bool, error) {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			v, err := ctx.substitute(a.Value)
			if err != nil {
				return "", true, ctx.errorAt(name, err)
			}
			return v, true, nil
		}
	}
	return "", false, nil
}

// RequireAttr returns the substituted value of a required attribute.
func (ctx *ParseContext) RequireAttr(e *xmlquery.Node, name string) (string, error) {
	v, ok, err := ctx.Attr(e, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ctx.errorAt(name, ErrMissingAttribute)
	}
	return v, nil
}

func (ctx *ParseContext) requireInt(e *xmlquery.Node, name string) (int, error) {
	v, err := ctx.RequireAttr(e, name)
	if err != nil {
		return 0, err
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, ctx.errorAt(name, err)
	}
	return n, nil
}

// Text returns the trimmed, substituted text content of e.
func (ctx *ParseContext) Text(e *xmlquery.Node) (string, error) {
	v, err := ctx.substitute(strings.TrimSpace(e.InnerText()))
	if err != nil {
		return "", ctx.errorAt(e.Data, err)
	}
	return v, nil
}

// textOf reads a required value given either as attribute name or as a
// child element <name>.
func (ctx *ParseContext) textOf(e *xmlquery.Node, name string) (string, error) {
	if v, ok, err := ctx.Attr(e, name); ok || err != nil {
		return v, err
	}
	for _, ch := range childElements(e) {
		if ch.Data == name {
			return ctx.Text(ch)
		}
	}
	return "", ctx.errorAt(name, ErrMissingAttribute)
}

// placementAttributes are read by grid parents rather than the child.
var placementAttributes = map[string]bool{"row": true, "column": true}

// parseComponent builds one component element and its subtree.
func (ctx *ParseContext) parseComponent(e *xmlquery.Node, parent *Component, depth int) (*Component, error) {
	t, ok := ctx.Registry.Lookup(e.Data)
	if !ok {
		return nil, &ParseError{Path: ctx.Path() + "/" + e.Data, Err: fmt.Errorf("%w <%s>", ErrUnknownComponent, e.Data)}
	}
	seg := e.Data
	if id := attr(e, "id"); id != "" {
		seg += "#" + id
	}
	ctx.push(seg)
	defer ctx.pop()

	c, err := t.Factory(e, ctx)
	if err != nil {
		return nil, err
	}
	_, inGrid := layoutOf[*GridLayout](parent)
	for _, a := range e.Attr {
		name := a.Name.Local
		if a.Name.Space == "xmlns" || name == "xmlns" || t.consumes(name) || (inGrid && placementAttributes[name]) {
			continue
		}
		value, err := ctx.substitute(a.Value)
		if err != nil {
			return nil, ctx.errorAt(name, err)
		}
		if err := ctx.apply(c, t, name, value); err != nil {
			return nil, err
		}
	}

	for _, el := range childElements(e) {
		if el.Data == "children" {
			if err := ctx.parseChildren(c, el, depth); err != nil {
				return nil, err
			}
			continue
		}
		if h, ok := ctx.Registry.element(t, el.Data); ok {
			if err := h(c, el, ctx); err != nil {
				return nil, wrapPropertyError(ctx, el.Data, err)
			}
			continue
		}
		if _, ok := ctx.Registry.setter(t, el.Data); !ok && el.Data != "id" {
			ctx.Warn("unknown property <%s> on <%s>", el.Data, e.Data)
			continue
		}
		value, err := ctx.Text(el)
		if err != nil {
			return nil, err
		}
		if err := ctx.apply(c, t, el.Data, value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// apply runs the setter for one property. Unknown properties are warnings.
func (ctx *ParseContext) apply(c *Component, t *ComponentType, name, value string) error {
	if name == "id" {
		c.Name = strings.TrimSpace(value)
		return nil
	}
	set, ok := ctx.Registry.setter(t, name)
	if !ok {
		ctx.Warn("unknown property %q on <%s>", name, c.Kind)
		return nil
	}
	if err := set(c, value, ctx); err != nil {
		return ctx.errorAt(name, err)
	}
	return nil
}

func wrapPropertyError(ctx *ParseContext, name string, err error) error {
	if _, ok := err.(*ParseError); ok {
		return err
	}
	return ctx.errorAt(name, err)
}

// parseChildren builds every element of a <children> block and attaches it.
func (ctx *ParseContext) parseChildren(c *Component, block *xmlquery.Node, depth int) error {
	if c.Layout == nil {
		return &ParseError{Path: ctx.Path(), Err: fmt.Errorf("<%s> does not accept children", c.Kind)}
	}
	target := c
	if cc, ok := c.Layout.(childContainer); ok {
		target = cc.childTarget(c)
	}
	ctx.push("children")
	defer ctx.pop()

	for _, el := range childElements(block) {
		var child *Component
		var err error
		if el.Data == "template" {
			child, err = ctx.inlineTemplate(el, target, depth)
		} else {
			child, err = ctx.parseComponent(el, target, depth)
		}
		if err != nil {
			return err
		}
		if err := ctx.attach(target, child, el); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *ParseContext) attach(parent, child *Component, el *xmlquery.Node) error {
	switch l := parent.Layout.(type) {
	case *ScrollLayout:
		if l.Child() != nil {
			return &ParseError{Path: ctx.Path(), Err: fmt.Errorf("<scroll> takes a single child, found another <%s>", el.Data)}
		}
		l.SetChild(parent, child)
	case *GridLayout:
		row, hasRow, err := ctx.Attr(el, "row")
		if err != nil {
			return err
		}
		col, hasCol, err := ctx.Attr(el, "column")
		if err != nil {
			return err
		}
		if !hasRow && !hasCol {
			parent.AddChild(child)
			return nil
		}
		r, err := parseInt(orDefault(row, "0"))
		if err != nil {
			return ctx.errorAt("row", err)
		}
		cl, err := parseInt(orDefault(col, "0"))
		if err != nil {
			return ctx.errorAt("column", err)
		}
		if r < 0 || r >= l.Rows || cl < 0 || cl >= l.Columns {
			return ctx.errorAt("row", fmt.Errorf("cell (%d, %d) outside %dx%d grid", r, cl, l.Rows, l.Columns))
		}
		SetCell(parent, child, r, cl)
	default:
		parent.AddChild(child)
	}
	return nil
}

// inlineTemplate expands <template name="x"> used inside <children>.
// Parameters come from the other attributes and from child elements.
func (ctx *ParseContext) inlineTemplate(el *xmlquery.Node, parent *Component, depth int) (*Component, error) {
	name, err := ctx.RequireAttr(el, "name")
	if err != nil {
		return nil, err
	}
	params := make(map[string]string)
	for _, a := range el.Attr {
		if a.Name.Local == "name" || placementAttributes[a.Name.Local] {
			continue
		}
		v, err := ctx.substitute(a.Value)
		if err != nil {
			return nil, ctx.errorAt(a.Name.Local, err)
		}
		params[a.Name.Local] = v
	}
	for _, p := range childElements(el) {
		v, err := ctx.Text(p)
		if err != nil {
			return nil, err
		}
		params[p.Data] = v
	}
	return ctx.expandTemplate(name, params, parent, depth+1)
}

func (ctx *ParseContext) expandTemplate(name string, params map[string]string, parent *Component, depth int) (*Component, error) {
	if depth > maxTemplateDepth {
		return nil, &ParseError{Path: ctx.Path(), Err: fmt.Errorf("template %q nested deeper than %d", name, maxTemplateDepth)}
	}
	body, ok := ctx.model.templates[name]
	if !ok {
		return nil, &ParseError{Path: ctx.Path(), Err: fmt.Errorf("%w %q", ErrUnknownTemplate, name)}
	}
	saved := ctx.params
	ctx.params = params
	defer func() { ctx.params = saved }()
	return ctx.parseComponent(body, parent, depth)
}

// layoutOf returns c's layout as T.
func layoutOf[T Layout](c *Component) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	l, ok := c.Layout.(T)
	return l, ok
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == xmlquery.ElementNode {
			return ch
		}
	}
	return nil
}

func childElements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == xmlquery.ElementNode {
			out = append(out, ch)
		}
	}
	return out
}

// attr returns the raw value of attribute name, or "".
func attr(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
