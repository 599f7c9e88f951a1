// pkg/engine/accumulator.go
package engine

// Accumulator implements the fixed-timestep pattern at the host boundary:
// real elapsed time accumulates, and the simulation advances in constant
// steps regardless of how the host paces frames. Physics stays deterministic
// and frame-rate independent.
type Accumulator struct {
	step     float64
	acc      float64
	maxFrame float64
}

// NewAccumulator creates an accumulator for the given fixed step. Frames
// longer than maxFrame (e.g. after a debugger pause) are clamped so the
// simulation never spirals trying to catch up.
func NewAccumulator(step, maxFrame float64) *Accumulator {
	if maxFrame < step {
		maxFrame = step
	}
	return &Accumulator{step: step, maxFrame: maxFrame}
}

// Step returns the fixed step size in seconds.
func (a *Accumulator) Step() float64 {
	return a.step
}

// Advance adds elapsed real seconds and invokes fn once per whole fixed step
// now owed. Returns the number of steps run.
func (a *Accumulator) Advance(elapsed float64, fn func(dt float64)) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > a.maxFrame {
		elapsed = a.maxFrame
	}
	a.acc += elapsed

	steps := 0
	for a.acc >= a.step {
		a.acc -= a.step
		fn(a.step)
		steps++
	}
	return steps
}

// Reset drops any banked time, used after a restart.
func (a *Accumulator) Reset() {
	a.acc = 0
}
