// pkg/engine/fire.go
package engine

import (
	"math"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/event"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// Ordnance collider radii.
const (
	projectileRadius = 3
	missileRadius    = 5
	pdShotRadius     = 2
)

// pdBurstShots is the number of interceptor rounds per burst. The whole
// burst costs one ammo unit.
const pdBurstShots = 3

// pdBurstSpread is the angular offset between burst rounds, radians.
const pdBurstSpread = 0.06

// resolveFire works through this tick's queued fire requests in arrival
// order. A denial publishes a FireDenied event and changes no state.
func (g *Game) resolveFire() {
	for _, req := range g.fireQueue {
		ship, ok := g.Ships[req.shipID]
		if !ok || !ship.Active {
			continue
		}
		if req.slot < 0 || req.slot >= len(ship.Mounts) {
			continue
		}
		mount := ship.Mounts[req.slot]

		result := mount.Fire()
		if result != entity.FireOK {
			// A held laser retries at tick rate; report one denial per
			// lockout instead of one per tick.
			if mount.LatchDenial() {
				g.bus.Publish(event.NewWeaponEvent(
					event.FireDenied, g,
					uint64(ship.ID), mount.Spec.Kind.String(), result.String(),
				))
			}
			continue
		}

		switch mount.Spec.Kind {
		case entity.Laser:
			g.fireLaser(ship, mount.Spec)
		case entity.Railgun:
			g.fireRailgun(ship, mount.Spec)
		case entity.MissileLauncher:
			g.fireMissile(ship, mount.Spec)
		}

		g.bus.Publish(event.NewWeaponEvent(
			event.WeaponFired, g,
			uint64(ship.ID), mount.Spec.Kind.String(), result.String(),
		))
	}
	g.fireQueue = g.fireQueue[:0]
}

// fireLaser resolves the hitscan beam: damage-per-firing-tick to the first
// hostile ship along the heading ray, within range. No traveling entity is
// spawned.
func (g *Game) fireLaser(ship *entity.Ship, spec entity.WeaponSpec) {
	dir := physics.FromAngle(ship.Heading, 1)

	var target *entity.Ship
	nearest := math.MaxFloat64
	for _, other := range g.shipsByID() {
		if !other.Active || !other.Faction.Hostile(ship.Faction) {
			continue
		}
		if dist, hit := physics.RayCircle(ship.Position, dir, other.GetCollider(), spec.Range); hit && dist < nearest {
			nearest = dist
			target = other
		}
	}

	if target == nil {
		return
	}
	if target.TakeDamage(spec.Damage) {
		g.destroyShip(target)
	}
}

// fireRailgun spawns a high-velocity slug ahead of the ship's collider so it
// cannot strike its own shooter on the spawn tick.
func (g *Game) fireRailgun(ship *entity.Ship, spec entity.WeaponSpec) {
	dir := physics.FromAngle(ship.Heading, 1)
	muzzle := ship.Position.Add(dir.Scale(ship.Collider.Radius + projectileRadius + 2))

	p := &entity.Projectile{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: muzzle,
			Velocity: dir.Scale(spec.Speed),
			Heading:  ship.Heading,
			Faction:  ship.Faction,
			Collider: physics.Circle{Center: muzzle, Radius: projectileRadius},
			Active:   true,
		},
		SourceKind: entity.Railgun,
		OwnerID:    ship.ID,
		Damage:     spec.Damage,
		Range:      spec.Range,
	}
	g.Projectiles[p.ID] = p
}

// fireMissile spawns a guided round locked onto the nearest hostile ship in
// range; with no lock it flies ballistically along the heading.
func (g *Game) fireMissile(ship *entity.Ship, spec entity.WeaponSpec) {
	dir := physics.FromAngle(ship.Heading, 1)
	muzzle := ship.Position.Add(dir.Scale(ship.Collider.Radius + missileRadius + 2))

	var targetID entity.ID
	nearest := spec.Range
	for _, other := range g.shipsByID() {
		if !other.Active || !other.Faction.Hostile(ship.Faction) {
			continue
		}
		if dist := other.Position.Distance(ship.Position); dist <= nearest {
			nearest = dist
			targetID = other.ID
		}
	}

	m := &entity.Missile{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: muzzle,
			Velocity: dir.Scale(spec.Speed),
			Heading:  ship.Heading,
			Faction:  ship.Faction,
			Collider: physics.Circle{Center: muzzle, Radius: missileRadius},
			Active:   true,
		},
		OwnerID:        ship.ID,
		Damage:         spec.Damage,
		TargetID:       targetID,
		CruiseSpeed:    spec.Speed,
		DeltaV:         spec.DeltaVBudget,
		CorrectionRate: spec.CorrectionRate,
		TicksLeft:      spec.LifetimeTicks,
	}
	g.Missiles[m.ID] = m
}

// requestPDBurst activates point defense: pick the most urgent incoming
// hostile ordnance inside the PD envelope and put a burst on its predicted
// position. With no valid target the request is denied and no ammo is spent.
func (g *Game) requestPDBurst(ship *entity.Ship) {
	targetPos, targetVel, targetID, ok := g.pdTarget(ship)
	if !ok {
		return
	}
	if !ship.PD.Burst() {
		return
	}

	// Lead the target by straight-line flight time of the interceptor.
	dist := targetPos.Distance(ship.Position)
	lead := targetPos.Add(targetVel.Scale(dist / ship.PD.ShotSpeed))
	aim := lead.Sub(ship.Position).Angle()

	for i := 0; i < pdBurstShots; i++ {
		offset := (float64(i) - float64(pdBurstShots-1)/2) * pdBurstSpread
		dir := physics.FromAngle(aim+offset, 1)
		muzzle := ship.Position.Add(dir.Scale(ship.Collider.Radius + pdShotRadius + 1))

		shot := &entity.PDShot{
			BaseEntity: entity.BaseEntity{
				ID:       g.ids.Next(),
				Position: muzzle,
				Velocity: dir.Scale(ship.PD.ShotSpeed),
				Heading:  physics.NormalizeAngle(aim + offset),
				Faction:  ship.Faction,
				Collider: physics.Circle{Center: muzzle, Radius: pdShotRadius},
				Active:   true,
			},
			OwnerID:  ship.ID,
			TargetID: targetID,
			Damage:   ship.PD.Damage,
			Range:    ship.PD.Range * 1.5,
		}
		g.PDShots[shot.ID] = shot
	}

	g.bus.Publish(&event.BaseEvent{EventType: event.PointDefenseBurst, Source: ship})
}

// pdTarget selects the incoming hostile ordnance with the shortest time to
// impact, inside PD range and the time-to-impact window.
func (g *Game) pdTarget(ship *entity.Ship) (physics.Vector2D, physics.Vector2D, entity.ID, bool) {
	var bestPos, bestVel physics.Vector2D
	var bestID entity.ID
	bestTTI := math.MaxFloat64
	found := false

	consider := func(id entity.ID, pos, vel physics.Vector2D, faction entity.Faction) {
		if !faction.Hostile(ship.Faction) {
			return
		}
		dist := pos.Distance(ship.Position)
		if dist > ship.PD.Range {
			return
		}
		tti, ok := timeToImpact(pos, vel, ship.Position, ship.Velocity)
		if !ok || tti > ship.PD.TTIWindow {
			return
		}
		if tti < bestTTI {
			bestTTI = tti
			bestPos, bestVel, bestID = pos, vel, id
			found = true
		}
	}

	for _, p := range g.Projectiles {
		if p.Active {
			consider(p.ID, p.Position, p.Velocity, p.Faction)
		}
	}
	for _, m := range g.Missiles {
		if m.Active {
			consider(m.ID, m.Position, m.Velocity, m.Faction)
		}
	}

	return bestPos, bestVel, bestID, found
}

// timeToImpact estimates seconds until the ordnance reaches the ship,
// assuming both hold velocity. Returns false when the ordnance is not
// closing.
func timeToImpact(pos, vel, shipPos, shipVel physics.Vector2D) (float64, bool) {
	relPos := shipPos.Sub(pos)
	relVel := vel.Sub(shipVel)

	closingSpeed := relPos.Normalize().Dot(relVel)
	if closingSpeed <= 0 {
		return 0, false
	}
	return relPos.Length() / closingSpeed, true
}

// requestPDReload starts the timed reload when the magazine is not full and
// no reload is running. Firing is blocked until it completes.
func (g *Game) requestPDReload(ship *entity.Ship) {
	if ship.PD.StartReload() {
		g.bus.Publish(&event.BaseEvent{EventType: event.PointDefenseReload, Source: ship})
	}
}

// destroyShip marks a ship destroyed and publishes the event. Removal from
// the collection happens in the cleanup phase.
func (g *Game) destroyShip(ship *entity.Ship) {
	if !ship.Active {
		return
	}
	ship.Active = false
	g.bus.Publish(event.NewShipEvent(
		event.ShipDestroyed, g,
		uint64(ship.ID), ship.Faction.String(),
	))
}
