// pkg/engine/combat.go
package engine

import (
	"math"
	"slices"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/event"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// updateShips integrates every active ship and wraps it back into the
// arena. Wrap applies to ships only; ordnance expires at the bounds instead.
func (g *Game) updateShips(dt float64) {
	for _, ship := range g.Ships {
		if !ship.Active {
			continue
		}
		ship.Update(dt)
		ship.Position = physics.Wrap(ship.Position, g.Config.WorldSize)
		ship.Collider.Center = ship.Position
	}
}

// updateOrdnance integrates all in-flight ordnance and expires anything past
// its lifetime, range, or the arena bounds. Missiles resolve their target by
// ID each tick; a destroyed target simply yields no correction and the round
// coasts ballistically.
func (g *Game) updateOrdnance(dt float64) {
	for _, p := range g.Projectiles {
		if !p.Active {
			continue
		}
		p.Update(dt)
		if !physics.InBounds(p.Position, g.Config.WorldSize) {
			p.Active = false
		}
	}

	for _, m := range g.Missiles {
		if !m.Active {
			continue
		}
		var targetPos *physics.Vector2D
		if target, ok := g.Ships[m.TargetID]; ok && target.Active {
			pos := target.Position
			targetPos = &pos
		}
		wasActive := m.Active
		m.Update(dt, targetPos)
		if !physics.InBounds(m.Position, g.Config.WorldSize) {
			m.Active = false
		}
		if wasActive && !m.Active {
			g.bus.Publish(&event.BaseEvent{EventType: event.MissileExpired, Source: m})
		}
	}

	for _, s := range g.PDShots {
		if !s.Active {
			continue
		}
		s.Update(dt)
		if !physics.InBounds(s.Position, g.Config.WorldSize) {
			s.Active = false
		}
	}
}

// resolveCombat tests this tick's post-integration positions: hostile
// ordnance against ships, then interceptor shots against ordnance. Damage
// within a tick is cumulative; an ordnance round is consumed by its first
// hit. Proximity is tested discretely after integration; there is no sweep.
func (g *Game) resolveCombat() {
	g.rebuildSpatialIndex()
	g.resolveOrdnanceShipHits()
	g.resolveInterceptHits()
}

// rebuildSpatialIndex reindexes all active ordnance for broad-phase queries.
func (g *Game) rebuildSpatialIndex() {
	g.spatial.Clear()
	for _, p := range g.Projectiles {
		if p.Active {
			g.spatial.Insert(p.Position, p)
		}
	}
	for _, m := range g.Missiles {
		if m.Active {
			g.spatial.Insert(m.Position, m)
		}
	}
}

// ordnanceHit is one queried round that passed the exact collision test.
// The expend closure deactivates the underlying entity.
type ordnanceHit struct {
	id     entity.ID
	pos    physics.Vector2D
	damage int
	expend func()
}

// collectHits narrows a broad-phase query to the active hostile rounds whose
// colliders overlap the given circle, sorted by ID so resolution order never
// depends on map or tree layout.
func collectHits(candidates []any, against physics.Circle, faction entity.Faction) []ordnanceHit {
	var hits []ordnanceHit
	for _, obj := range candidates {
		switch ord := obj.(type) {
		case *entity.Projectile:
			if ord.Active && ord.Faction.Hostile(faction) && against.Collides(ord.GetCollider()) {
				hits = append(hits, ordnanceHit{
					id: ord.ID, pos: ord.Position, damage: ord.Damage,
					expend: func() { ord.Active = false },
				})
			}
		case *entity.Missile:
			if ord.Active && ord.Faction.Hostile(faction) && against.Collides(ord.GetCollider()) {
				hits = append(hits, ordnanceHit{
					id: ord.ID, pos: ord.Position, damage: ord.Damage,
					expend: func() { ord.Active = false },
				})
			}
		}
	}
	slices.SortFunc(hits, func(a, b ordnanceHit) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})
	return hits
}

// resolveOrdnanceShipHits applies every hostile ordnance hit to each ship.
// All hits in the same tick land; damage is additive, so the sorted order
// matters only for keeping runs byte-identical.
func (g *Game) resolveOrdnanceShipHits() {
	for _, ship := range g.shipsByID() {
		if !ship.Active {
			continue
		}

		area := physics.Rect{
			Center: ship.Position,
			Width:  (ship.Collider.Radius + missileRadius) * 2,
			Height: (ship.Collider.Radius + missileRadius) * 2,
		}

		destroyed := false
		for _, hit := range collectHits(g.spatial.Query(area), ship.GetCollider(), ship.Faction) {
			hit.expend()
			if ship.TakeDamage(hit.damage) {
				destroyed = true
			}
		}

		if destroyed {
			g.destroyShip(ship)
		}
	}
}

// resolveInterceptHits destroys hostile ordnance struck by interceptor
// shots. Each shot is consumed with exactly one victim; shots resolve in ID
// order and victim choice is deterministic, so two shots contending for the
// same round always play out the same way.
func (g *Game) resolveInterceptHits() {
	for _, shot := range g.pdShotsByID() {
		if !shot.Active {
			continue
		}

		area := physics.Rect{
			Center: shot.Position,
			Width:  (shot.Collider.Radius + missileRadius) * 2,
			Height: (shot.Collider.Radius + missileRadius) * 2,
		}

		hits := collectHits(g.spatial.Query(area), shot.GetCollider(), shot.Faction)
		victim, ok := pickVictim(shot, hits)
		if !ok {
			continue
		}

		victim.expend()
		shot.Active = false
		g.bus.Publish(event.NewInterceptEvent(g, uint64(shot.ID), uint64(victim.id)))
	}
}

// pickVictim chooses the round a shot destroys: its designated target when
// that target is among the hits, otherwise the nearest hit with the lower ID
// winning ties.
func pickVictim(shot *entity.PDShot, hits []ordnanceHit) (ordnanceHit, bool) {
	for _, hit := range hits {
		if hit.id == shot.TargetID {
			return hit, true
		}
	}

	var best ordnanceHit
	bestDist := math.MaxFloat64
	found := false
	for _, hit := range hits {
		dist := hit.pos.Distance(shot.Position)
		if !found || dist < bestDist || (dist == bestDist && hit.id < best.id) {
			best, bestDist, found = hit, dist, true
		}
	}
	return best, found
}

// cleanupInactive removes destroyed ships and spent ordnance from the
// authoritative collections.
func (g *Game) cleanupInactive() {
	for id, ship := range g.Ships {
		if !ship.Active {
			delete(g.Ships, id)
		}
	}
	for id, p := range g.Projectiles {
		if !p.Active {
			delete(g.Projectiles, id)
		}
	}
	for id, m := range g.Missiles {
		if !m.Active {
			delete(g.Missiles, id)
		}
	}
	for id, s := range g.PDShots {
		if !s.Active {
			delete(g.PDShots, id)
		}
	}
}
