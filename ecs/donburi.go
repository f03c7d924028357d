// Package ecs provides ECS adapters for backdrop.
package ecs

import (
	"github.com/phanxgames/backdrop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for backdrop input events.
// Every event carries the tracker's full sample after the update.
var InputEventType = events.NewEventType[backdrop.InputEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Input events are published to InputEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) backdrop.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event backdrop.InputEvent) {
	InputEventType.Publish(s.world, event)
}
