// pkg/entity/ship_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-outpost/pkg/physics"
)

func testStats() ShipStats {
	return ShipStats{
		MaxHull:  100,
		Thrust:   180,
		TurnRate: 3.0,
		MaxSpeed: 300,
		Radius:   14,
	}
}

func testShip() *Ship {
	mounts := []*Mount{
		NewMount(laserSpec()),
		NewMount(railgunSpec()),
	}
	pd := PointDefenseState{Ammo: 8, MaxAmmo: 8, ReloadTicks: 180, Range: 260, TTIWindow: 1.5, ShotSpeed: 700, Damage: 1}
	return NewShip(1, Concord, testStats(), mounts, pd, physics.Vector2D{}, 0)
}

func TestNewShip(t *testing.T) {
	s := testShip()

	if !s.Active {
		t.Error("new ship must be active")
	}
	if s.Hull != 100 {
		t.Errorf("Hull = %d, expected full 100", s.Hull)
	}
	if s.Collider.Radius != 14 {
		t.Errorf("Collider.Radius = %v, expected 14", s.Collider.Radius)
	}
}

func TestShip_UpdateRotation(t *testing.T) {
	s := testShip()
	s.TurningRight = true
	s.Update(1.0)

	if !almostEqualF(s.Heading, 3.0) {
		t.Errorf("Heading = %v, expected 3.0 after one second at TurnRate 3", s.Heading)
	}

	s.TurningRight = false
	s.TurningLeft = true
	s.Update(1.0)
	if !almostEqualF(s.Heading, 0.0) {
		t.Errorf("Heading = %v, expected back to 0", s.Heading)
	}
}

func TestShip_UpdateHeadingStaysNormalized(t *testing.T) {
	s := testShip()
	s.TurningLeft = true
	for i := 0; i < 600; i++ {
		s.Update(1.0 / 60.0)
		if s.Heading < 0 || s.Heading >= 2*math.Pi {
			t.Fatalf("Heading %v escaped [0, 2π)", s.Heading)
		}
	}
}

func TestShip_ThrustAcceleratesAlongHeading(t *testing.T) {
	s := testShip()
	s.Thrusting = true
	s.Update(1.0 / 60.0)

	if s.Velocity.X <= 0 {
		t.Errorf("Velocity.X = %v, expected positive thrust along heading 0", s.Velocity.X)
	}
	if !almostEqualF(s.Velocity.Y, 0) {
		t.Errorf("Velocity.Y = %v, expected 0", s.Velocity.Y)
	}
	if s.Position.X <= 0 {
		t.Errorf("Position.X = %v, expected movement", s.Position.X)
	}
}

func TestShip_SpeedCap(t *testing.T) {
	s := testShip()
	s.Thrusting = true
	for i := 0; i < 60*20; i++ {
		s.Update(1.0 / 60.0)
	}
	if speed := s.Velocity.Length(); speed > s.Stats.MaxSpeed+1e-9 {
		t.Errorf("speed %v exceeds cap %v", speed, s.Stats.MaxSpeed)
	}
}

func TestShip_CoastsWithoutThrust(t *testing.T) {
	s := testShip()
	s.Velocity = physics.Vector2D{X: 50, Y: -20}
	s.Update(1.0 / 60.0)

	if !almostEqualF(s.Velocity.X, 50) || !almostEqualF(s.Velocity.Y, -20) {
		t.Errorf("velocity changed while coasting: %v", s.Velocity)
	}
}

func TestShip_SelectWeapon(t *testing.T) {
	s := testShip()

	s.SelectWeapon(1)
	if s.Selected != 1 {
		t.Errorf("Selected = %d, expected 1", s.Selected)
	}

	// Out-of-range slots are ignored.
	s.SelectWeapon(5)
	if s.Selected != 1 {
		t.Errorf("Selected = %d after invalid slot, expected unchanged 1", s.Selected)
	}
	s.SelectWeapon(-1)
	if s.Selected != 1 {
		t.Errorf("Selected = %d after negative slot, expected unchanged 1", s.Selected)
	}

	if m := s.SelectedMount(); m == nil || m.Spec.Kind != Railgun {
		t.Error("SelectedMount() did not return the railgun")
	}
}

func TestShip_MountOf(t *testing.T) {
	s := testShip()
	if m := s.MountOf(Laser); m == nil || m.Spec.Kind != Laser {
		t.Error("MountOf(Laser) failed")
	}
	if m := s.MountOf(MissileLauncher); m != nil {
		t.Error("MountOf(MissileLauncher) on a fit without one must be nil")
	}
}

func TestShip_TakeDamage(t *testing.T) {
	tests := []struct {
		name          string
		hits          []int
		expectedHull  int
		expectedDead  bool
	}{
		{name: "partial_damage", hits: []int{40}, expectedHull: 60, expectedDead: false},
		{name: "exact_kill", hits: []int{40, 40, 20}, expectedHull: 0, expectedDead: true},
		{name: "overkill_clamps", hits: []int{250}, expectedHull: 0, expectedDead: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testShip()
			destroyed := false
			for _, hit := range tt.hits {
				destroyed = s.TakeDamage(hit)
			}
			if s.Hull != tt.expectedHull {
				t.Errorf("Hull = %d, expected %d", s.Hull, tt.expectedHull)
			}
			if destroyed != tt.expectedDead {
				t.Errorf("destroyed = %v, expected %v", destroyed, tt.expectedDead)
			}
		})
	}
}

func TestShip_HullFraction(t *testing.T) {
	s := testShip()
	s.TakeDamage(25)
	if got := s.HullFraction(); !almostEqualF(got, 0.75) {
		t.Errorf("HullFraction() = %v, expected 0.75", got)
	}
}

func almostEqualF(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
