package bramble

import "github.com/hajimehoshi/ebiten/v2"

// Event carries the data of a single interaction or lifecycle event.
type Event struct {
	Type EventType

	// Target is the component the event was originally delivered to.
	// Component is the component whose handlers are currently running; it
	// differs from Target while the event bubbles.
	Target    *Component
	Component *Component

	// Pointer position in screen pixels and relative to Component.
	X, Y           int
	LocalX, LocalY int

	Button    MouseButton
	Modifiers KeyModifiers

	// Drag: press origin and the movement since the previous drag event.
	// Scroll: wheel amounts.
	StartX, StartY int
	DeltaX, DeltaY float64

	Key  ebiten.Key
	Char rune

	consumed bool
}

// Consume stops the event from bubbling further.
func (e *Event) Consume() { e.consumed = true }

// Consumed reports whether a handler consumed the event.
func (e *Event) Consumed() bool { return e.consumed }

// Listener receives events of the type it was registered for.
type Listener func(*Event)

// EventHandler is implemented by Layout and Content strategies that react to
// input. HandleEvent returns true when it consumed the event.
type EventHandler interface {
	HandleEvent(c *Component, e *Event) bool
}

type listenerEntry struct {
	id uint32
	fn Listener
}

// listenerSet holds listeners indexed by event type.
type listenerSet struct {
	byType [eventTypeCount][]listenerEntry
	nextID uint32
}

func (ls *listenerSet) add(t EventType, fn Listener) Subscription {
	ls.nextID++
	ls.byType[t] = append(ls.byType[t], listenerEntry{id: ls.nextID, fn: fn})
	return Subscription{id: ls.nextID, set: ls, event: t}
}

func (ls *listenerSet) has(t EventType) bool {
	return len(ls.byType[t]) > 0
}

// fire runs the listeners registered for e.Type. The slice is snapshotted so
// listeners may subscribe or unsubscribe while running.
func (ls *listenerSet) fire(e *Event) {
	entries := ls.byType[e.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// Subscription allows removing a registered listener.
type Subscription struct {
	id    uint32
	set   *listenerSet
	event EventType
}

// Remove unregisters the listener so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (s Subscription) Remove() {
	if s.set == nil {
		return
	}
	entries := s.set.byType[s.event]
	for i := range entries {
		if entries[i].id == s.id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = listenerEntry{}
			s.set.byType[s.event] = entries[:len(entries)-1]
			return
		}
	}
}

// On registers fn for events of type t delivered to this component.
// A component with at least one listener for t consumes events of that type.
func (c *Component) On(t EventType, fn Listener) Subscription {
	return c.listeners.add(t, fn)
}

// OnClick is shorthand for On(EventClick, ...).
func (c *Component) OnClick(fn Listener) Subscription {
	return c.On(EventClick, fn)
}

// fireLifecycle delivers mount and dismount events directly to c and its
// descendants, parents first.
func (c *Component) fireLifecycle(t EventType) {
	if c.listeners.has(t) {
		e := &Event{Type: t, Target: c, Component: c}
		c.listeners.fire(e)
	}
	for _, ch := range c.children {
		ch.fireLifecycle(t)
	}
}

// InteractionEvent is the ECS-facing summary of an event delivered to a
// component with a non-zero EntityID.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	Name      string
	X, Y      int
	LocalX    int
	LocalY    int
	Button    MouseButton
	Modifiers KeyModifiers
	DeltaX    float64
	DeltaY    float64
	Key       ebiten.Key
	Char      rune
}

// EntityStore receives interaction events for components bound to entities.
type EntityStore interface {
	EmitEvent(InteractionEvent)
}
