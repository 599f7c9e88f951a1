// pkg/entity/heat_test.go
package entity

import (
	"math"
	"testing"
)

func TestNewHeatState_ClampsRelease(t *testing.T) {
	h := NewHeatState(100, 120, 10)
	if h.Release >= h.Max {
		t.Errorf("Release = %v, must stay below Max %v", h.Release, h.Max)
	}
}

func TestHeatState_CanAccept(t *testing.T) {
	tests := []struct {
		name      string
		heat      float64
		overheat  bool
		increment float64
		expected  bool
	}{
		{name: "cold", heat: 0, increment: 20, expected: true},
		{name: "exactly_reaches_max", heat: 80, increment: 20, expected: true},
		{name: "would_exceed_max", heat: 81, increment: 20, expected: false},
		{name: "overheated_locked", heat: 50, overheat: true, increment: 1, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeatState(100, 70, 10)
			h.Heat = tt.heat
			h.Overheated = tt.overheat
			if got := h.CanAccept(tt.increment); got != tt.expected {
				t.Errorf("CanAccept(%v) = %v, expected %v", tt.increment, got, tt.expected)
			}
		})
	}
}

func TestHeatState_OverheatLockoutCycle(t *testing.T) {
	// Max 100, 20 per shot: five shots reach exactly 100 and trip the
	// lockout; the sixth is denied. Cooling releases only at 70.
	h := NewHeatState(100, 70, 10)

	for i := 0; i < 5; i++ {
		if !h.AddHeat(20) {
			t.Fatalf("shot %d denied, expected accepted", i+1)
		}
	}
	if !h.Overheated {
		t.Fatal("expected overheat lockout after reaching max")
	}
	if h.Heat != 100 {
		t.Fatalf("Heat = %v, expected 100", h.Heat)
	}
	if h.AddHeat(20) {
		t.Fatal("shot while overheated must be denied")
	}
	if h.Heat != 100 {
		t.Errorf("denied shot changed heat to %v", h.Heat)
	}

	// Cool from 100 toward 70 at 10/s. Above the release threshold the
	// lockout holds.
	h.Cool(1) // 90
	h.Cool(1) // 80
	if !h.Overheated {
		t.Fatalf("lockout released early at heat %v", h.Heat)
	}
	h.Cool(1) // 70 == Release
	if h.Overheated {
		t.Fatalf("lockout still held at heat %v", h.Heat)
	}
	if !h.CanAccept(20) {
		t.Error("expected fire accepted after release")
	}
}

func TestHeatState_CoolFloorsAtZero(t *testing.T) {
	h := NewHeatState(100, 70, 50)
	h.Heat = 10
	h.Cool(1)
	if h.Heat != 0 {
		t.Errorf("Heat = %v, expected floor at 0", h.Heat)
	}
}

func TestHeatState_Phase(t *testing.T) {
	h := NewHeatState(100, 70, 10)
	if h.Phase() != HeatIdle {
		t.Errorf("fresh state phase = %v, expected HeatIdle", h.Phase())
	}

	h.AddHeat(20)
	if h.Phase() != HeatHeating {
		t.Errorf("after firing phase = %v, expected HeatHeating", h.Phase())
	}

	h.Cool(0.1)
	if h.Phase() != HeatCooling {
		t.Errorf("while cooling phase = %v, expected HeatCooling", h.Phase())
	}

	for i := 0; i < 4; i++ {
		h.AddHeat(20)
	}
	h.Heat = h.Max
	h.Overheated = true
	if h.Phase() != HeatOverheated {
		t.Errorf("overheated phase = %v, expected HeatOverheated", h.Phase())
	}
}

func TestHeatState_Fraction(t *testing.T) {
	h := NewHeatState(100, 70, 10)
	h.Heat = 25
	if got := h.Fraction(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Fraction() = %v, expected 0.25", got)
	}

	var zero HeatState
	if zero.Fraction() != 0 {
		t.Errorf("zero-max Fraction() = %v, expected 0", zero.Fraction())
	}
}
