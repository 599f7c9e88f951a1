// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	GameStarted        Type = "game_started"
	GameEnded          Type = "game_ended"
	WeaponFired        Type = "weapon_fired"
	FireDenied         Type = "fire_denied"
	ShipDestroyed      Type = "ship_destroyed"
	OrdnanceIntercept  Type = "ordnance_intercepted"
	MissileExpired     Type = "missile_expired"
	WaveSpawned        Type = "wave_spawned"
	PointDefenseBurst  Type = "pd_burst"
	PointDefenseReload Type = "pd_reload"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching. Publishing runs handlers
// synchronously on the caller's goroutine, which keeps tick ordering
// deterministic.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// ShipEvent carries ship-related event data.
type ShipEvent struct {
	BaseEvent
	ShipID  uint64
	Faction string
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, faction string) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:  shipID,
		Faction: faction,
	}
}

// WeaponEvent carries fire-resolution event data.
type WeaponEvent struct {
	BaseEvent
	ShipID uint64
	Weapon string
	Result string
}

// NewWeaponEvent creates a new weapon event
func NewWeaponEvent(eventType Type, source interface{}, shipID uint64, weapon, result string) *WeaponEvent {
	return &WeaponEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID: shipID,
		Weapon: weapon,
		Result: result,
	}
}

// InterceptEvent carries point-defense intercept data.
type InterceptEvent struct {
	BaseEvent
	ShotID     uint64
	OrdnanceID uint64
}

// NewInterceptEvent creates a new intercept event
func NewInterceptEvent(source interface{}, shotID, ordnanceID uint64) *InterceptEvent {
	return &InterceptEvent{
		BaseEvent: BaseEvent{
			EventType: OrdnanceIntercept,
			Source:    source,
		},
		ShotID:     shotID,
		OrdnanceID: ordnanceID,
	}
}

// WaveEvent carries wave-spawn data.
type WaveEvent struct {
	BaseEvent
	Wave  int
	Count int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(source interface{}, wave, count int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{
			EventType: WaveSpawned,
			Source:    source,
		},
		Wave:  wave,
		Count: count,
	}
}
