// pkg/entity/ordnance.go
package entity

import (
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// Projectile is a traveling railgun slug. Lasers are hitscan and never
// appear here; every traveling round carries a finite range budget so the
// active set stays bounded.
type Projectile struct {
	BaseEntity
	SourceKind WeaponKind
	OwnerID    ID
	Damage     int
	Range      float64
	Traveled   float64
}

// Update integrates the projectile and expires it past its range budget.
func (p *Projectile) Update(dt float64) {
	before := p.Position
	p.Integrate(dt)
	p.Traveled += before.Distance(p.Position)
	if p.Traveled >= p.Range {
		p.Active = false
	}
}

// Missile is guided ordnance with a finite Δv budget. The target is held as
// an ID only; the orchestrator resolves it through the ship collection each
// tick, so a destroyed target simply stops producing corrections and the
// missile coasts ballistically.
type Missile struct {
	BaseEntity
	OwnerID ID
	Damage  int

	TargetID    ID // zero when no target was available at launch
	CruiseSpeed float64

	DeltaV         float64 // remaining correction budget
	CorrectionRate float64 // max Δv spendable per second
	TicksLeft      int
}

// Update steers toward targetPos when a correction budget remains, then
// integrates. Pass nil targetPos when the target no longer resolves. Each
// correction burn is bounded by CorrectionRate*dt and by the remaining
// budget; the spent amount is deducted so cumulative expenditure can never
// exceed the initial budget.
func (m *Missile) Update(dt float64, targetPos *physics.Vector2D) {
	if targetPos != nil && m.DeltaV > 0 {
		desired := targetPos.Sub(m.Position).Normalize().Scale(m.CruiseSpeed)
		burnCap := m.CorrectionRate * dt
		if burnCap > m.DeltaV {
			burnCap = m.DeltaV
		}
		burn := desired.Sub(m.Velocity).ClampLength(burnCap)
		m.Velocity = m.Velocity.Add(burn)
		m.DeltaV -= burn.Length()
		if m.DeltaV < 0 {
			m.DeltaV = 0
		}
	}

	m.Integrate(dt)
	m.Heading = physics.NormalizeAngle(m.Velocity.Angle())

	m.TicksLeft--
	if m.TicksLeft <= 0 {
		m.Active = false
	}
}

// PDShot is a short-range interceptor round aimed at incoming ordnance.
type PDShot struct {
	BaseEntity
	OwnerID  ID
	TargetID ID
	Damage   int
	Range    float64
	Traveled float64
}

// Update integrates the shot and expires it past its range budget.
func (s *PDShot) Update(dt float64) {
	before := s.Position
	s.Integrate(dt)
	s.Traveled += before.Distance(s.Position)
	if s.Traveled >= s.Range {
		s.Active = false
	}
}
