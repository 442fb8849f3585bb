// Package telemetry provides session statistics, milestone detection, and CSV output.
package telemetry

import "github.com/KevinA2505/Emerald/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventHit EventType = iota
	EventMiss
	EventTreeFelled
	EventRockBroken
	EventPlantCleared
	EventHarvest
	EventThrow
	EventProjectileStuck
	EventConsume
	EventTreeRemoved
)

var eventNames = [...]string{
	EventHit:             "hit",
	EventMiss:            "miss",
	EventTreeFelled:      "tree_felled",
	EventRockBroken:      "rock_broken",
	EventPlantCleared:    "plant_cleared",
	EventHarvest:         "harvest",
	EventThrow:           "throw",
	EventProjectileStuck: "projectile_stuck",
	EventConsume:         "consume",
	EventTreeRemoved:     "tree_removed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	AssetID  int
	Category components.Category

	// Optional fields depending on event type
	Yield int     // resources granted by the event
	Count int     // fruit picked
	Power float64 // throw power
}

// NewHitEvent creates an event for an accepted hit on an asset.
func NewHitEvent(tick int32, id int, cat components.Category, yield int) Event {
	return Event{Type: EventHit, Tick: tick, AssetID: id, Category: cat, Yield: yield}
}

// NewMissEvent creates an event for a swing that found no valid target.
func NewMissEvent(tick int32) Event {
	return Event{Type: EventMiss, Tick: tick, AssetID: -1}
}

// NewHarvestEvent creates a fruit pick event.
func NewHarvestEvent(tick int32, plantID, count int) Event {
	return Event{Type: EventHarvest, Tick: tick, AssetID: plantID, Category: components.CategoryPlant, Count: count}
}

// NewThrowEvent creates a projectile launch event.
func NewThrowEvent(tick int32, power float64) Event {
	return Event{Type: EventThrow, Tick: tick, AssetID: -1, Power: power}
}

// NewTreeRemovedEvent creates an event for a felled tree that finished fading out.
func NewTreeRemovedEvent(tick int32, id int) Event {
	return Event{Type: EventTreeRemoved, Tick: tick, AssetID: id, Category: components.CategoryTree}
}

// NewStuckEvent creates an event for a projectile coming to rest. assetID is -1 for ground or map edge.
func NewStuckEvent(tick int32, assetID int) Event {
	return Event{Type: EventProjectileStuck, Tick: tick, AssetID: assetID}
}
