// pkg/engine/game.go
package engine

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/opd-ai/go-outpost/pkg/ai"
	"github.com/opd-ai/go-outpost/pkg/config"
	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/event"
	"github.com/opd-ai/go-outpost/pkg/input"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// Phase is the match state machine: Active loops at the fixed tick until one
// side is gone, then the terminal phase freezes all mutation until Reset.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseVictory
	PhaseDefeat
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Game owns the authoritative entity collections for the match and advances
// them one fixed timestep at a time. All mutation happens inside Advance on
// the caller's goroutine; cross-references between entities are IDs resolved
// through these maps, never direct pointers.
type Game struct {
	Config *config.ScenarioConfig

	Ships       map[entity.ID]*entity.Ship
	Projectiles map[entity.ID]*entity.Projectile
	Missiles    map[entity.ID]*entity.Missile
	PDShots     map[entity.ID]*entity.PDShot

	PlayerID entity.ID
	Phase    Phase
	Tick     uint64
	Score    int

	ids        entity.IDAllocator
	bus        *event.Bus
	controller *ai.Controller
	spawner    *waveSpawner
	spatial    *physics.QuadTree
	inputs     *input.Buffer
	rng        *rand.Rand

	// Fire requests gathered during the input/AI phases, resolved in order
	// during the weapon phase.
	fireQueue []fireRequest

	quitRequested bool
}

type fireRequest struct {
	shipID entity.ID
	slot   int
}

// NewGame creates a game for the scenario and populates the opening state.
func NewGame(cfg *config.ScenarioConfig) *Game {
	g := &Game{
		Config: cfg,
		bus:    event.NewEventBus(),
		inputs: input.NewBuffer(),
		controller: ai.NewController(
			cfg.AI.PreferredRange,
			cfg.AI.AlignTolerance,
			cfg.AI.PDThreatRange,
		),
	}
	g.registerEventHandlers()
	g.Reset()
	return g
}

// Input returns the buffer hosts feed between ticks.
func (g *Game) Input() *input.Buffer {
	return g.inputs
}

// EventBus returns the game's event bus for audio and telemetry consumers.
func (g *Game) EventBus() *event.Bus {
	return g.bus
}

// QuitRequested reports whether the player asked to quit.
func (g *Game) QuitRequested() bool {
	return g.quitRequested
}

// Reset rebuilds all entity collections, timers, and score from the
// scenario, returning the match to PhaseActive. This is the only valid
// operation after a terminal phase.
func (g *Game) Reset() {
	g.ids.Reset()
	g.Ships = make(map[entity.ID]*entity.Ship)
	g.Projectiles = make(map[entity.ID]*entity.Projectile)
	g.Missiles = make(map[entity.ID]*entity.Missile)
	g.PDShots = make(map[entity.ID]*entity.PDShot)
	g.fireQueue = g.fireQueue[:0]
	g.Phase = PhaseActive
	g.Tick = 0
	g.Score = 0
	g.inputs.Reset()
	g.rng = rand.New(rand.NewPCG(g.Config.Seed, g.Config.Seed^0x9e3779b97f4a7c15))
	g.spawner = newWaveSpawner(g.Config.Waves)
	g.spatial = physics.NewQuadTree(physics.Rect{
		Width:  g.Config.WorldSize,
		Height: g.Config.WorldSize,
	}, 8)

	g.spawnPlayer()
	g.spawnEnemyRing(g.Config.EnemyCount, g.Config.SpawnRadius, 0)

	g.bus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Advance runs one fixed simulation step. Input is drained atomically first,
// then AI, weapon resolution, ship physics, ordnance physics, combat
// resolution, and the terminal check, in that order. In a terminal phase
// only the quit command is honored.
func (g *Game) Advance(dt float64) {
	frame := g.inputs.Drain()

	if g.Phase != PhaseActive {
		for _, cmd := range frame.Pressed {
			if cmd == input.Quit {
				g.quitRequested = true
			}
		}
		return
	}

	g.applyPlayerInput(frame)
	g.runAI()
	g.resolveFire()
	g.updateShips(dt)
	g.updateOrdnance(dt)
	g.resolveCombat()
	g.cleanupInactive()
	g.spawner.tick(g)
	g.checkTerminal()
	g.Tick++
}

// applyPlayerInput writes the drained frame onto the player's control
// surface. Unknown or out-of-context commands are ignored.
func (g *Game) applyPlayerInput(frame input.Frame) {
	ship, ok := g.Ships[g.PlayerID]
	if !ok || !ship.Active {
		return
	}

	ship.TurningLeft = frame.RotateLeft
	ship.TurningRight = frame.RotateRight
	ship.Thrusting = frame.Thrust
	ship.FiringHeld = frame.Fire

	for _, cmd := range frame.Pressed {
		switch cmd {
		case input.SelectWeapon1:
			ship.SelectWeapon(0)
		case input.SelectWeapon2:
			ship.SelectWeapon(1)
		case input.SelectWeapon3:
			ship.SelectWeapon(2)
		case input.PDBurst:
			g.requestPDBurst(ship)
		case input.PDReload:
			g.requestPDReload(ship)
		case input.Fire:
			g.requestPlayerFire(ship, false)
		case input.Quit:
			g.quitRequested = true
		}
	}

	// The laser sustains while fire is held; discrete weapons only fire on
	// the press edge handled above.
	if ship.FiringHeld {
		g.requestPlayerFire(ship, true)
	}
}

// requestPlayerFire queues a fire request for the selected mount. Held
// requests only apply to the laser; edge requests only to discrete weapons,
// so one keypress cannot double-fire either way.
func (g *Game) requestPlayerFire(ship *entity.Ship, held bool) {
	mount := ship.SelectedMount()
	if mount == nil {
		return
	}
	if held != (mount.Spec.Kind == entity.Laser) {
		return
	}
	g.fireQueue = append(g.fireQueue, fireRequest{shipID: ship.ID, slot: ship.Selected})
}

// runAI computes and applies a decision for every enemy ship, in ID order
// for determinism.
func (g *Game) runAI() {
	player := g.Ships[g.PlayerID]

	for _, ship := range g.shipsByID() {
		if ship.ID == g.PlayerID || !ship.Active {
			continue
		}

		threat := g.nearestThreatRange(ship)
		decision := g.controller.Decide(ship, player, threat)

		ship.TurningLeft = decision.TurnLeft
		ship.TurningRight = decision.TurnRight
		ship.Thrusting = decision.Thrust

		if decision.FireSlot >= 0 {
			g.fireQueue = append(g.fireQueue, fireRequest{shipID: ship.ID, slot: decision.FireSlot})
		}
		if decision.PDBurst {
			g.requestPDBurst(ship)
		}
		if decision.PDReload {
			g.requestPDReload(ship)
		}
	}
}

// shipsByID returns the active ship set sorted by ID, so per-tick iteration
// order never depends on map layout.
func (g *Game) shipsByID() []*entity.Ship {
	ships := make([]*entity.Ship, 0, len(g.Ships))
	for _, s := range g.Ships {
		ships = append(ships, s)
	}
	slices.SortFunc(ships, func(a, b *entity.Ship) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return ships
}

// pdShotsByID returns the interceptor shots sorted by ID, mirroring
// shipsByID for the intercept resolution order.
func (g *Game) pdShotsByID() []*entity.PDShot {
	shots := make([]*entity.PDShot, 0, len(g.PDShots))
	for _, s := range g.PDShots {
		shots = append(shots, s)
	}
	slices.SortFunc(shots, func(a, b *entity.PDShot) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return shots
}

// nearestThreatRange returns the distance to the closest hostile ordnance
// inbound on ship, or -1 when nothing threatens it.
func (g *Game) nearestThreatRange(ship *entity.Ship) float64 {
	nearest := -1.0
	consider := func(pos, vel physics.Vector2D, faction entity.Faction) {
		if !faction.Hostile(ship.Faction) {
			return
		}
		dist := pos.Distance(ship.Position)
		if !closing(pos, vel, ship.Position, ship.Velocity) {
			return
		}
		if nearest < 0 || dist < nearest {
			nearest = dist
		}
	}

	for _, p := range g.Projectiles {
		if p.Active {
			consider(p.Position, p.Velocity, p.Faction)
		}
	}
	for _, m := range g.Missiles {
		if m.Active {
			consider(m.Position, m.Velocity, m.Faction)
		}
	}
	return nearest
}

// closing reports whether ordnance at pos with velocity vel is approaching
// the ship.
func closing(pos, vel, shipPos, shipVel physics.Vector2D) bool {
	relPos := shipPos.Sub(pos)
	relVel := vel.Sub(shipVel)
	return relPos.Dot(relVel) > 0
}

// spawnPlayer places the Concord craft at the arena center.
func (g *Game) spawnPlayer() {
	mounts := []*entity.Mount{
		entity.NewMount(g.Config.Weapons.Laser.Spec(entity.Laser)),
		entity.NewMount(g.Config.Weapons.Railgun.Spec(entity.Railgun)),
		entity.NewMount(g.Config.Weapons.Missile.Spec(entity.MissileLauncher)),
	}
	ship := entity.NewShip(
		g.ids.Next(),
		entity.Concord,
		g.Config.Player.Stats(),
		mounts,
		g.Config.PD.State(),
		physics.Vector2D{},
		0,
	)
	g.Ships[ship.ID] = ship
	g.PlayerID = ship.ID
}

// spawnEnemyRing places count Mandate raiders on a ring around the arena
// center, evenly spaced with a small seeded jitter, facing inward.
func (g *Game) spawnEnemyRing(count int, radius float64, hullBonus int) {
	if count <= 0 {
		return
	}

	stats := g.Config.Enemy.Stats()
	stats.MaxHull += hullBonus

	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + g.rng.Float64()*0.3
		pos := physics.FromAngle(angle, radius)

		mounts := []*entity.Mount{
			entity.NewMount(g.Config.Weapons.Laser.Spec(entity.Laser)),
			entity.NewMount(g.Config.Weapons.Railgun.Spec(entity.Railgun)),
			entity.NewMount(g.Config.Weapons.Missile.Spec(entity.MissileLauncher)),
		}
		ship := entity.NewShip(
			g.ids.Next(),
			entity.Mandate,
			stats,
			mounts,
			g.Config.PD.State(),
			pos,
			angle+math.Pi, // face the center
		)
		g.Ships[ship.ID] = ship
	}
}

// hostileShipsRemain reports whether any active Mandate ship is left.
func (g *Game) hostileShipsRemain() bool {
	for _, ship := range g.Ships {
		if ship.Active && ship.Faction == entity.Mandate {
			return true
		}
	}
	return false
}

// checkTerminal transitions to Victory or Defeat when one side is gone.
// Victory additionally requires the wave schedule to be exhausted.
func (g *Game) checkTerminal() {
	player, ok := g.Ships[g.PlayerID]
	if !ok || !player.Active {
		g.endGame(PhaseDefeat)
		return
	}
	if !g.hostileShipsRemain() && g.spawner.exhausted() {
		g.endGame(PhaseVictory)
	}
}

func (g *Game) endGame(phase Phase) {
	if g.Phase != PhaseActive {
		return
	}
	g.Phase = phase
	g.bus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// registerEventHandlers wires internal consumers: score keeping.
func (g *Game) registerEventHandlers() {
	g.bus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok && se.Faction == entity.Mandate.String() {
			g.Score += 10
		}
	})
	g.bus.Subscribe(event.OrdnanceIntercept, func(event.Event) {
		g.Score += 2
	})
}
