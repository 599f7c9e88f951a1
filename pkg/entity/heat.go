// pkg/entity/heat.go
package entity

// HeatPhase describes where a weapon sits in its thermal cycle.
type HeatPhase int

const (
	HeatIdle HeatPhase = iota
	HeatHeating
	HeatOverheated
	HeatCooling
)

// HeatState is the per-weapon thermal accumulator. Firing adds heat; every
// tick radiates some away. Reaching Max trips the overheat lockout, which
// holds until heat falls to Release (strictly below Max, so the flag cannot
// flicker at the boundary).
type HeatState struct {
	Heat       float64
	Max        float64
	Release    float64
	CoolRate   float64 // heat removed per second
	Overheated bool

	firedThisTick bool
}

// NewHeatState builds a heat accumulator. Release is clamped below Max.
func NewHeatState(max, release, coolRate float64) HeatState {
	if release >= max {
		release = max * 0.7
	}
	return HeatState{
		Max:      max,
		Release:  release,
		CoolRate: coolRate,
	}
}

// CanAccept reports whether a shot adding increment heat would be allowed.
// Denied while overheated, and denied when the increment would push heat
// past Max.
func (h *HeatState) CanAccept(increment float64) bool {
	if h.Overheated {
		return false
	}
	return h.Heat+increment <= h.Max
}

// AddHeat applies the heat cost of a shot. Returns false (no state change)
// when the shot must be denied.
func (h *HeatState) AddHeat(increment float64) bool {
	if !h.CanAccept(increment) {
		return false
	}
	h.Heat += increment
	h.firedThisTick = true
	if h.Heat >= h.Max {
		h.Heat = h.Max
		h.Overheated = true
	}
	return true
}

// Cool radiates heat for one tick and clears the overheat lockout once heat
// reaches the release threshold.
func (h *HeatState) Cool(dt float64) {
	h.Heat -= h.CoolRate * dt
	if h.Heat < 0 {
		h.Heat = 0
	}
	if h.Overheated && h.Heat <= h.Release {
		h.Overheated = false
	}
	h.firedThisTick = false
}

// Phase reports the current thermal phase, for gauges and telemetry.
func (h *HeatState) Phase() HeatPhase {
	switch {
	case h.Overheated:
		return HeatOverheated
	case h.firedThisTick:
		return HeatHeating
	case h.Heat > 0:
		return HeatCooling
	default:
		return HeatIdle
	}
}

// Fraction returns heat normalized to 0..1 for gauge rendering.
func (h *HeatState) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Heat / h.Max
}
