// pkg/engine/snapshot_test.go
package engine

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

func TestSnapshot_ShipViews(t *testing.T) {
	g := NewGame(testConfig())
	snap := g.Snapshot()

	if snap.Phase != PhaseActive || snap.StatusText != "" {
		t.Errorf("active snapshot: phase=%v status=%q", snap.Phase, snap.StatusText)
	}
	if len(snap.Ships) != 2 {
		t.Fatalf("ships = %d, expected 2", len(snap.Ships))
	}

	var player *ShipView
	for i := range snap.Ships {
		if snap.Ships[i].IsPlayer {
			player = &snap.Ships[i]
		}
	}
	if player == nil {
		t.Fatal("no ship flagged as the player")
	}
	if player.HullFraction != 1.0 {
		t.Errorf("fresh player HullFraction = %v, expected 1", player.HullFraction)
	}
	if len(player.Heat) != 3 {
		t.Fatalf("heat gauges = %d, expected one per mount", len(player.Heat))
	}
	if player.Heat[0].Label != "Laser" || player.Heat[1].Label != "Railgun" {
		t.Errorf("gauge labels = %q, %q", player.Heat[0].Label, player.Heat[1].Label)
	}
	if player.PDAmmo != 8 || player.PDAmmoMax != 8 {
		t.Errorf("PD = %d/%d, expected full 8/8", player.PDAmmo, player.PDAmmoMax)
	}
}

func TestSnapshot_StableOrdering(t *testing.T) {
	g := NewGame(testConfig())

	for i := 0; i < 5; i++ {
		spawnProjectileAt(g, physics.Vector2D{X: float64(i * 10)}, entity.Concord, 1)
	}

	snap := g.Snapshot()
	for i := 1; i < len(snap.Ordnance); i++ {
		if snap.Ordnance[i-1].ID >= snap.Ordnance[i].ID {
			t.Fatal("ordnance views not sorted by ID")
		}
	}
	for i := 1; i < len(snap.Ships); i++ {
		if snap.Ships[i-1].ID >= snap.Ships[i].ID {
			t.Fatal("ship views not sorted by ID")
		}
	}
}

func TestSnapshot_TerminalStatusText(t *testing.T) {
	g := NewGame(testConfig())
	g.destroyShip(g.firstMandate())
	g.Advance(g.Config.TimeStep)

	snap := g.Snapshot()
	if snap.Phase != PhaseVictory {
		t.Fatalf("phase = %v, expected victory", snap.Phase)
	}
	if !strings.HasPrefix(snap.StatusText, "VICTORY") {
		t.Errorf("StatusText = %q, expected a victory banner", snap.StatusText)
	}
	if !strings.Contains(snap.StatusText, "restart") {
		t.Errorf("StatusText = %q, expected restart hint", snap.StatusText)
	}
}

func TestSnapshot_ValueCopy(t *testing.T) {
	g := NewGame(testConfig())
	snap := g.Snapshot()
	before := snap.Ships[0].Position

	g.Ships[snap.Ships[0].ID].Position = physics.Vector2D{X: 999, Y: 999}

	if snap.Ships[0].Position != before {
		t.Error("snapshot shares state with live entities")
	}
}

func TestSnapshot_ExcludesInactive(t *testing.T) {
	g := NewGame(testConfig())
	p := spawnProjectileAt(g, physics.Vector2D{X: 50}, entity.Concord, 1)
	p.Active = false

	snap := g.Snapshot()
	for _, ord := range snap.Ordnance {
		if ord.ID == p.ID {
			t.Error("inactive ordnance leaked into the snapshot")
		}
	}
}
