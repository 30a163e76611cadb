package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries bramble interaction events inside a Donburi
// world. Published events wait in the world's queue until
// events.ProcessAllEvents (or InteractionEventType.ProcessEvents) runs, so
// systems see them on their own schedule rather than mid-dispatch.
var InteractionEventType = events.NewEventType[bramble.InteractionEvent]()

// donburiStore publishes to one world. The screen only calls EmitEvent for a
// component with a non-zero EntityID that consumed the event: clicks, mouse
// down/up, drags, wheel scrolls, keys and typed chars that it handled, plus
// hover and focus changes when it listens for them. Events that bubbled past
// the component without being consumed are not emitted for it.
type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an EntityStore for screen.SetEntityStore that
// forwards every emitted event to world.
func NewDonburiStore(world donburi.World) bramble.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bramble.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// SubscribeEntity subscribes fn to the events of the component bound to id.
// A screen typically binds one id per widget, so this saves each system from
// filtering on EntityID itself.
func SubscribeEntity(world donburi.World, id uint32, fn func(donburi.World, bramble.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.InteractionEvent) {
		if e.EntityID == id {
			fn(w, e)
		}
	})
}
