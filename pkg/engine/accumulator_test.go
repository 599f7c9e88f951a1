// pkg/engine/accumulator_test.go
package engine

import (
	"testing"
)

func TestAccumulator_WholeSteps(t *testing.T) {
	acc := NewAccumulator(0.01, 0.25)

	steps := acc.Advance(0.03, func(dt float64) {
		if dt != 0.01 {
			t.Errorf("fn called with dt %v, expected fixed 0.01", dt)
		}
	})
	if steps != 3 {
		t.Errorf("Advance(0.03) ran %d steps, expected 3", steps)
	}
}

func TestAccumulator_BanksRemainder(t *testing.T) {
	acc := NewAccumulator(0.01, 0.25)

	if steps := acc.Advance(0.015, func(float64) {}); steps != 1 {
		t.Fatalf("first Advance ran %d steps, expected 1", steps)
	}
	// The leftover 0.005 plus another 0.005 owes exactly one more step.
	if steps := acc.Advance(0.005, func(float64) {}); steps != 1 {
		t.Errorf("second Advance ran %d steps, expected 1 from banked time", steps)
	}
}

func TestAccumulator_ClampsLongFrames(t *testing.T) {
	acc := NewAccumulator(0.01, 0.05)

	steps := acc.Advance(10.0, func(float64) {})
	if steps != 5 {
		t.Errorf("clamped Advance ran %d steps, expected 5", steps)
	}
}

func TestAccumulator_NegativeElapsed(t *testing.T) {
	acc := NewAccumulator(0.01, 0.25)
	if steps := acc.Advance(-1, func(float64) {}); steps != 0 {
		t.Errorf("negative elapsed ran %d steps, expected 0", steps)
	}
}

func TestAccumulator_Reset(t *testing.T) {
	acc := NewAccumulator(0.01, 0.25)
	acc.Advance(0.009, func(float64) {})

	acc.Reset()

	if steps := acc.Advance(0.005, func(float64) {}); steps != 0 {
		t.Errorf("Advance after Reset ran %d steps, expected banked time dropped", steps)
	}
}

func TestAccumulator_MaxFrameFloor(t *testing.T) {
	acc := NewAccumulator(0.02, 0.001)
	// maxFrame below step is raised to step, so one step still runs.
	if steps := acc.Advance(1.0, func(float64) {}); steps != 1 {
		t.Errorf("Advance ran %d steps, expected 1", steps)
	}
}

func TestAccumulator_Step(t *testing.T) {
	acc := NewAccumulator(1.0/60.0, 0.25)
	if acc.Step() != 1.0/60.0 {
		t.Errorf("Step() = %v, expected 1/60", acc.Step())
	}
}
