package ecs

import (
	"testing"

	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	if store := NewDonburiStore(world); store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []bramble.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(bramble.InteractionEvent{
		Type:     bramble.EventClick,
		EntityID: 42,
		Name:     "ok",
		X:        100,
		Y:        200,
		Button:   bramble.MouseButtonLeft,
	})
	store.EmitEvent(bramble.InteractionEvent{
		Type:   bramble.EventMouseScroll,
		DeltaY: -1,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != bramble.EventClick || e.EntityID != 42 || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != bramble.EventMouseScroll || e.DeltaY != -1 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestSubscribeEntity(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var got []bramble.EventType
	SubscribeEntity(world, 7, func(_ donburi.World, e bramble.InteractionEvent) {
		got = append(got, e.Type)
	})

	store.EmitEvent(bramble.InteractionEvent{Type: bramble.EventClick, EntityID: 7})
	store.EmitEvent(bramble.InteractionEvent{Type: bramble.EventClick, EntityID: 8})
	store.EmitEvent(bramble.InteractionEvent{Type: bramble.EventKeyPress, EntityID: 7})
	InteractionEventType.ProcessEvents(world)

	if len(got) != 2 || got[0] != bramble.EventClick || got[1] != bramble.EventKeyPress {
		t.Errorf("got %v, want [click key-press]", got)
	}
}
