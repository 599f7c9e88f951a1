// pkg/engine/combat_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/event"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

func spawnProjectileAt(g *Game, pos physics.Vector2D, faction entity.Faction, damage int) *entity.Projectile {
	p := &entity.Projectile{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: pos,
			Faction:  faction,
			Collider: physics.Circle{Center: pos, Radius: projectileRadius},
			Active:   true,
		},
		SourceKind: entity.Railgun,
		Damage:     damage,
		Range:      1400,
	}
	g.Projectiles[p.ID] = p
	return p
}

func spawnMissileAt(g *Game, pos physics.Vector2D, faction entity.Faction, damage int) *entity.Missile {
	m := &entity.Missile{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: pos,
			Faction:  faction,
			Collider: physics.Circle{Center: pos, Radius: missileRadius},
			Active:   true,
		},
		Damage:    damage,
		TicksLeft: 600,
	}
	g.Missiles[m.ID] = m
	return m
}

func spawnPDShotAt(g *Game, pos physics.Vector2D, faction entity.Faction, targetID entity.ID) *entity.PDShot {
	s := &entity.PDShot{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: pos,
			Faction:  faction,
			Collider: physics.Circle{Center: pos, Radius: pdShotRadius},
			Active:   true,
		},
		TargetID: targetID,
		Damage:   1,
		Range:    400,
	}
	g.PDShots[s.ID] = s
	return s
}

func TestResolveCombat_ProjectileHitsShip(t *testing.T) {
	g := NewGame(testConfig())
	enemy := g.firstMandate()
	placeShip(enemy, physics.Vector2D{X: 300}, 0)

	p := spawnProjectileAt(g, enemy.Position, entity.Concord, 40)
	hullBefore := enemy.Hull

	g.resolveCombat()

	if enemy.Hull != hullBefore-40 {
		t.Errorf("enemy hull = %d, expected %d", enemy.Hull, hullBefore-40)
	}
	if p.Active {
		t.Error("projectile not consumed by its hit")
	}
}

func TestResolveCombat_FriendlyFireExcluded(t *testing.T) {
	g := NewGame(testConfig())
	player := g.Ships[g.PlayerID]
	placeShip(player, physics.Vector2D{}, 0)

	p := spawnProjectileAt(g, player.Position, entity.Concord, 40)
	hullBefore := player.Hull

	g.resolveCombat()

	if player.Hull != hullBefore {
		t.Errorf("friendly round damaged its own side: %d -> %d", hullBefore, player.Hull)
	}
	if !p.Active {
		t.Error("friendly round consumed without a hit")
	}
}

func TestResolveCombat_CumulativeDamageSameTick(t *testing.T) {
	g := NewGame(testConfig())
	enemy := g.firstMandate()
	placeShip(enemy, physics.Vector2D{X: 300}, 0)
	enemy.Hull = 60

	spawnProjectileAt(g, enemy.Position, entity.Concord, 40)
	spawnProjectileAt(g, enemy.Position.Add(physics.Vector2D{X: 1}), entity.Concord, 40)

	g.resolveCombat()

	if enemy.Active {
		t.Error("two simultaneous 40-damage hits must destroy a 60-hull ship")
	}
}

func TestResolveCombat_DestroyedShipRemovedInCleanup(t *testing.T) {
	g := NewGame(testConfig())
	enemy := g.firstMandate()
	placeShip(enemy, physics.Vector2D{X: 300}, 0)
	enemy.Hull = 10

	spawnProjectileAt(g, enemy.Position, entity.Concord, 40)

	g.resolveCombat()
	if _, present := g.Ships[enemy.ID]; !present {
		t.Fatal("ship removed before the cleanup phase")
	}

	g.cleanupInactive()
	if _, present := g.Ships[enemy.ID]; present {
		t.Error("inactive ship survived cleanup")
	}
}

func TestResolveCombat_InterceptDestroysBoth(t *testing.T) {
	g := NewGame(testConfig())
	player := g.Ships[g.PlayerID]
	placeShip(player, physics.Vector2D{X: -500}, 0)

	m := spawnMissileAt(g, physics.Vector2D{X: 100}, entity.Mandate, 30)

	shot := &entity.PDShot{
		BaseEntity: entity.BaseEntity{
			ID:       g.ids.Next(),
			Position: m.Position,
			Faction:  entity.Concord,
			Collider: physics.Circle{Center: m.Position, Radius: pdShotRadius},
			Active:   true,
		},
		OwnerID:  player.ID,
		TargetID: m.ID,
		Damage:   1,
		Range:    400,
	}
	g.PDShots[shot.ID] = shot

	intercepts := 0
	g.bus.Subscribe(event.OrdnanceIntercept, func(event.Event) { intercepts++ })

	g.resolveCombat()

	if m.Active {
		t.Error("intercepted missile still active")
	}
	if shot.Active {
		t.Error("interceptor shot not consumed")
	}
	if intercepts != 1 {
		t.Errorf("intercept events = %d, expected 1", intercepts)
	}
}

func TestResolveCombat_InterceptContentionDeterministic(t *testing.T) {
	// Two interceptor shots over one round: the lower-ID shot must take the
	// kill and the other must survive, identically on every run.
	for run := 0; run < 50; run++ {
		g := NewGame(testConfig())
		player := g.Ships[g.PlayerID]
		placeShip(player, physics.Vector2D{X: -500}, 0)

		m := spawnMissileAt(g, physics.Vector2D{X: 100}, entity.Mandate, 30)
		first := spawnPDShotAt(g, m.Position, entity.Concord, m.ID)
		second := spawnPDShotAt(g, m.Position, entity.Concord, m.ID)

		g.resolveCombat()

		if m.Active {
			t.Fatalf("run %d: contested missile survived", run)
		}
		if first.Active {
			t.Fatalf("run %d: lower-ID shot not consumed", run)
		}
		if !second.Active {
			t.Fatalf("run %d: both shots consumed by one round", run)
		}
	}
}

func TestResolveCombat_InterceptPrefersDesignatedTarget(t *testing.T) {
	g := NewGame(testConfig())
	player := g.Ships[g.PlayerID]
	placeShip(player, physics.Vector2D{X: -500}, 0)

	// Two missiles inside the shot's collider; the nearer one is not the
	// designated target and must be passed over.
	near := spawnMissileAt(g, physics.Vector2D{X: 100}, entity.Mandate, 30)
	far := spawnMissileAt(g, physics.Vector2D{X: 104}, entity.Mandate, 30)
	shot := spawnPDShotAt(g, near.Position, entity.Concord, far.ID)

	g.resolveCombat()

	if far.Active {
		t.Error("designated target survived the intercept")
	}
	if !near.Active {
		t.Error("undesignated round destroyed instead of the target")
	}
	if shot.Active {
		t.Error("interceptor shot not consumed")
	}
}

func TestUpdateOrdnance_ExpiresAtBounds(t *testing.T) {
	g := NewGame(testConfig())
	half := g.Config.WorldSize / 2

	p := spawnProjectileAt(g, physics.Vector2D{X: half - 1}, entity.Concord, 40)
	p.Velocity = physics.Vector2D{X: 900}

	g.updateOrdnance(g.Config.TimeStep)

	if p.Active {
		t.Error("projectile crossing the arena edge must expire, not wrap")
	}
}

func TestUpdateOrdnance_MissileExpiryPublishesEvent(t *testing.T) {
	g := NewGame(testConfig())
	m := spawnMissileAt(g, physics.Vector2D{X: 100}, entity.Mandate, 30)
	m.TicksLeft = 1

	expired := 0
	g.bus.Subscribe(event.MissileExpired, func(event.Event) { expired++ })

	g.updateOrdnance(g.Config.TimeStep)

	if m.Active {
		t.Error("missile outlived its lifetime")
	}
	if expired != 1 {
		t.Errorf("expiry events = %d, expected 1", expired)
	}
}

func TestUpdateShips_WrapsAtBounds(t *testing.T) {
	g := NewGame(testConfig())
	player := g.Ships[g.PlayerID]
	half := g.Config.WorldSize / 2
	placeShip(player, physics.Vector2D{X: half - 1}, 0)
	player.Velocity = physics.Vector2D{X: 300}

	g.updateShips(g.Config.TimeStep)

	if player.Position.X > half {
		t.Errorf("ship at X=%v escaped the arena instead of wrapping", player.Position.X)
	}
	if !player.Active {
		t.Error("wrapping must not harm the ship")
	}
}
