// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Faction identifies which side an entity fights for.
type Faction int

const (
	Concord Faction = iota
	Mandate
)

// String returns the faction name
func (f Faction) String() string {
	switch f {
	case Concord:
		return "Concord"
	case Mandate:
		return "Mandate"
	default:
		return "Unknown"
	}
}

// Hostile reports whether two factions shoot at each other.
func (f Faction) Hostile(other Faction) bool {
	return f != other
}

// Kind is the renderable kind tag carried in frame snapshots.
type Kind int

const (
	KindShip Kind = iota
	KindProjectile
	KindMissile
	KindPDShot
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindProjectile:
		return "projectile"
	case KindMissile:
		return "missile"
	case KindPDShot:
		return "pd_shot"
	default:
		return "unknown"
	}
}

// BaseEntity contains state common to ships and all ordnance.
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64 // radians, normalized to [0, 2π)
	Faction  Faction
	Collider physics.Circle
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape at its current position.
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Collider.Radius,
	}
}

// Integrate advances the entity ballistically by one step.
func (e *BaseEntity) Integrate(dt float64) {
	e.Position, e.Velocity = physics.Integrate(e.Position, e.Velocity, physics.Vector2D{}, dt)
	e.Collider.Center = e.Position
}

// IDAllocator hands out sequential entity IDs. The orchestrator owns one so
// a scenario reset starts numbering fresh and stays deterministic.
type IDAllocator struct {
	next ID
}

// Next returns a fresh ID, never zero.
func (a *IDAllocator) Next() ID {
	a.next++
	return a.next
}

// Reset restarts numbering.
func (a *IDAllocator) Reset() {
	a.next = 0
}
