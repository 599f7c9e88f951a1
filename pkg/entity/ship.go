// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// ShipStats contains the base statistics for a hull.
type ShipStats struct {
	MaxHull  int
	Thrust   float64 // acceleration while the drive is lit
	TurnRate float64 // radians per second
	MaxSpeed float64
	Radius   float64
}

// Ship is a player or AI craft.
type Ship struct {
	BaseEntity
	Stats ShipStats
	Hull  int

	// Weapon fit: one mount per selectable slot, plus the PD system.
	Mounts   []*Mount
	Selected int
	PD       PointDefenseState

	// Control surface, written by the input handler or the AI each tick and
	// consumed by Update.
	Thrusting    bool
	TurningLeft  bool
	TurningRight bool
	FiringHeld   bool
}

// NewShip creates a ship at position with the given fit. Heading starts
// normalized; hull starts full.
func NewShip(id ID, faction Faction, stats ShipStats, mounts []*Mount, pd PointDefenseState, position physics.Vector2D, heading float64) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Heading:  physics.NormalizeAngle(heading),
			Faction:  faction,
			Collider: physics.Circle{
				Center: position,
				Radius: stats.Radius,
			},
			Active: true,
		},
		Stats:  stats,
		Hull:   stats.MaxHull,
		Mounts: mounts,
		PD:     pd,
	}
}

// Update applies the control surface for one fixed step: rotation, thrust
// acceleration under the speed cap, and semi-implicit integration. Weapon
// mounts and the PD reload timer tick here too, independent of fire state.
func (s *Ship) Update(dt float64) {
	if s.TurningLeft {
		s.Heading -= s.Stats.TurnRate * dt
	}
	if s.TurningRight {
		s.Heading += s.Stats.TurnRate * dt
	}
	s.Heading = physics.NormalizeAngle(s.Heading)

	var accel physics.Vector2D
	if s.Thrusting {
		accel = physics.FromAngle(s.Heading, s.Stats.Thrust)
	}

	s.Position, s.Velocity = physics.Integrate(s.Position, s.Velocity, accel, dt)
	s.Velocity = s.Velocity.ClampLength(s.Stats.MaxSpeed)
	s.Collider.Center = s.Position

	for _, m := range s.Mounts {
		m.Tick(dt)
	}
	s.PD.Tick()
}

// SelectWeapon switches the active mount. Out-of-range slots are ignored.
func (s *Ship) SelectWeapon(slot int) {
	if slot >= 0 && slot < len(s.Mounts) {
		s.Selected = slot
	}
}

// SelectedMount returns the active mount, or nil for an empty fit.
func (s *Ship) SelectedMount() *Mount {
	if s.Selected < 0 || s.Selected >= len(s.Mounts) {
		return nil
	}
	return s.Mounts[s.Selected]
}

// MountOf returns the first mount of the given kind, or nil.
func (s *Ship) MountOf(kind WeaponKind) *Mount {
	for _, m := range s.Mounts {
		if m.Spec.Kind == kind {
			return m
		}
	}
	return nil
}

// TakeDamage applies hull damage, clamping at zero. Returns true when the
// hit destroys the ship.
func (s *Ship) TakeDamage(amount int) bool {
	if s.Hull <= 0 {
		return true
	}
	s.Hull -= amount
	if s.Hull <= 0 {
		s.Hull = 0
		return true
	}
	return false
}

// HullFraction returns hull integrity normalized to 0..1.
func (s *Ship) HullFraction() float64 {
	if s.Stats.MaxHull <= 0 {
		return 0
	}
	return float64(s.Hull) / float64(s.Stats.MaxHull)
}
