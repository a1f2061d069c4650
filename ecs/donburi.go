package ecs

import (
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PhaseEventType is the Donburi event type for bough phase events.
// Subscribe to this in your ECS systems to react to finished transitions.
var PhaseEventType = events.NewEventType[bough.PhaseEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Phase events are published to PhaseEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) bough.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bough.PhaseEvent) {
	PhaseEventType.Publish(s.world, event)
}
