// pkg/engine/snapshot.go
package engine

import (
	"fmt"
	"slices"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// FrameSnapshot is the renderable world state emitted after a tick. It is a
// value copy: renderers may hold it across ticks without touching live
// entities.
type FrameSnapshot struct {
	Tick       uint64
	Phase      Phase
	StatusText string
	Score      int
	Wave       int
	TotalWaves int
	WorldSize  float64
	Ships      []ShipView
	Ordnance   []OrdnanceView
}

// ShipView is the renderable state of one ship.
type ShipView struct {
	ID       entity.ID
	Kind     entity.Kind
	Faction  entity.Faction
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64

	HullFraction float64
	Heat         []GaugeView
	Selected     int

	PDAmmo         int
	PDAmmoMax      int
	PDAmmoFraction float64
	PDReloading    bool

	IsPlayer bool
}

// GaugeView is one normalized 0..1 gauge for HUD rendering.
type GaugeView struct {
	Label      string
	Fraction   float64
	Overheated bool
}

// OrdnanceView is the renderable state of one in-flight round.
type OrdnanceView struct {
	ID       entity.ID
	Kind     entity.Kind
	Faction  entity.Faction
	Position physics.Vector2D
	Heading  float64
}

// Snapshot builds the frame snapshot for the current tick. Entities are
// sorted by ID so output order is stable across runs.
func (g *Game) Snapshot() *FrameSnapshot {
	snap := &FrameSnapshot{
		Tick:       g.Tick,
		Phase:      g.Phase,
		StatusText: g.statusText(),
		Score:      g.Score,
		Wave:       g.spawner.launched,
		TotalWaves: len(g.spawner.waves),
		WorldSize:  g.Config.WorldSize,
	}

	for _, ship := range g.shipsByID() {
		if !ship.Active {
			continue
		}
		view := ShipView{
			ID:             ship.ID,
			Kind:           entity.KindShip,
			Faction:        ship.Faction,
			Position:       ship.Position,
			Velocity:       ship.Velocity,
			Heading:        ship.Heading,
			HullFraction:   ship.HullFraction(),
			Selected:       ship.Selected,
			PDAmmo:         ship.PD.Ammo,
			PDAmmoMax:      ship.PD.MaxAmmo,
			PDAmmoFraction: ship.PD.AmmoFraction(),
			PDReloading:    ship.PD.Reloading(),
			IsPlayer:       ship.ID == g.PlayerID,
		}
		for _, m := range ship.Mounts {
			view.Heat = append(view.Heat, GaugeView{
				Label:      m.Spec.Kind.String(),
				Fraction:   m.Heat.Fraction(),
				Overheated: m.Heat.Overheated,
			})
		}
		snap.Ships = append(snap.Ships, view)
	}

	for _, p := range g.Projectiles {
		if p.Active {
			snap.Ordnance = append(snap.Ordnance, OrdnanceView{
				ID: p.ID, Kind: entity.KindProjectile, Faction: p.Faction,
				Position: p.Position, Heading: p.Heading,
			})
		}
	}
	for _, m := range g.Missiles {
		if m.Active {
			snap.Ordnance = append(snap.Ordnance, OrdnanceView{
				ID: m.ID, Kind: entity.KindMissile, Faction: m.Faction,
				Position: m.Position, Heading: m.Heading,
			})
		}
	}
	for _, s := range g.PDShots {
		if s.Active {
			snap.Ordnance = append(snap.Ordnance, OrdnanceView{
				ID: s.ID, Kind: entity.KindPDShot, Faction: s.Faction,
				Position: s.Position, Heading: s.Heading,
			})
		}
	}
	slices.SortFunc(snap.Ordnance, func(a, b OrdnanceView) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return snap
}

func (g *Game) statusText() string {
	switch g.Phase {
	case PhaseVictory:
		return fmt.Sprintf("VICTORY: all Mandate ships destroyed. Score %d. [R] restart, [Q] quit", g.Score)
	case PhaseDefeat:
		return fmt.Sprintf("DEFEAT: Concord craft lost. Score %d. [R] restart, [Q] quit", g.Score)
	default:
		return ""
	}
}
