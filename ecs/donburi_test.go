package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []bough.PhaseEvent
	PhaseEventType.Subscribe(world, func(w donburi.World, e bough.PhaseEvent) {
		received = append(received, e)
	})

	store.EmitEvent(bough.PhaseEvent{Kind: bough.EventExitDone, Leaf: 2, Generation: 7})
	store.EmitEvent(bough.PhaseEvent{Kind: bough.EventEnterDone, Leaf: -1})

	// Events are queued until processed.
	PhaseEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Kind != bough.EventExitDone || e.Leaf != 2 || e.Generation != 7 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Kind != bough.EventEnterDone || e.Leaf != -1 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store bough.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_SceneLoad(t *testing.T) {
	world := donburi.NewWorld()

	var kinds []bough.PhaseEventKind
	PhaseEventType.Subscribe(world, func(w donburi.World, e bough.PhaseEvent) {
		kinds = append(kinds, e.Kind)
	})

	s := bough.NewScene(bough.SceneConfig{})
	s.SetEntityStore(NewDonburiStore(world))
	root := bough.NewLeaf("bars", bough.BarDescriptor, []bough.Datum{{"x": 1, "y": 2}})
	if err := s.Mount(root); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200 && !s.Settled(); i++ {
		s.Update(16 * time.Millisecond)
	}
	PhaseEventType.ProcessEvents(world)

	if len(kinds) != 2 {
		t.Fatalf("expected 2 events, got %v", kinds)
	}
	if kinds[0] != bough.EventMounted || kinds[1] != bough.EventLoadDone {
		t.Errorf("events = %v, want [mounted load-done]", kinds)
	}
}
