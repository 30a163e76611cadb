package bramble

import "fmt"

// MainLayer is the layer name used by SetRoot.
const MainLayer = "main"

// LayerInstance is one root component stacked on the screen. Layers added
// later draw above and receive input before earlier ones.
type LayerInstance struct {
	Name string
	Root *Component
}

// SetRoot installs root as the main layer, replacing any previous main root.
func (s *Screen) SetRoot(root *Component) error {
	_, err := s.PushLayer(MainLayer, root)
	return err
}

// Root returns the main layer's root, or nil.
func (s *Screen) Root() *Component {
	if l := s.Layer(MainLayer); l != nil {
		return l.Root
	}
	return nil
}

// PushLayer validates root and stacks it on top of the existing layers. A
// layer with the same name is replaced in place.
func (s *Screen) PushLayer(name string, root *Component) (*LayerInstance, error) {
	if root == nil {
		return nil, fmt.Errorf("bramble: layer %q has a nil root", name)
	}
	if root.Parent != nil {
		return nil, fmt.Errorf("bramble: layer %q root %s already has a parent", name, root.Path())
	}
	if root.screen != nil && root.screen != s {
		return nil, fmt.Errorf("bramble: layer %q root is attached to another screen", name)
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	l := &LayerInstance{Name: name, Root: root}
	root.screen = s
	s.layoutDirty = true
	for i, existing := range s.layers {
		if existing.Name == name {
			s.detachLayer(existing)
			s.layers[i] = l
			return l, nil
		}
	}
	s.layers = append(s.layers, l)
	return l, nil
}

// RemoveLayer removes the named layer. Returns false if there is none.
func (s *Screen) RemoveLayer(name string) bool {
	for i, l := range s.layers {
		if l.Name == name {
			s.detachLayer(l)
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			s.layoutDirty = true
			return true
		}
	}
	return false
}

func (s *Screen) detachLayer(l *LayerInstance) {
	s.forget(l.Root)
	l.Root.screen = nil
}

// Layer returns the named layer, or nil.
func (s *Screen) Layer(name string) *LayerInstance {
	for _, l := range s.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the layer stack, bottom first. The returned slice MUST NOT be mutated.
func (s *Screen) Layers() []*LayerInstance {
	return s.layers
}

// UpdateLayers forces a relayout of every layer on the next frame.
func (s *Screen) UpdateLayers() {
	s.layoutDirty = true
}
