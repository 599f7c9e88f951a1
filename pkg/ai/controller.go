// Package ai implements the reactive enemy decision policy: pursue the
// hostile, hold preferred engagement range, and fire when aligned. The
// controller reads its own heat and magazine state so it never issues a
// request the weapon would deny. Purely deterministic given the same inputs;
// no learning, no pathfinding.
package ai

import (
	"math"

	"github.com/opd-ai/go-outpost/pkg/entity"
)

// Controller holds the tuning shared by every enemy ship.
type Controller struct {
	PreferredRange float64
	AlignTolerance float64
	PDThreatRange  float64
}

// Decision is the control surface the controller wants applied this tick.
// FireSlot is the mount index to fire, or -1 for none.
type Decision struct {
	TurnLeft  bool
	TurnRight bool
	Thrust    bool
	FireSlot  int
	PDBurst   bool
	PDReload  bool
}

// NewController creates a controller with the given tuning.
func NewController(preferredRange, alignTolerance, pdThreatRange float64) *Controller {
	return &Controller{
		PreferredRange: preferredRange,
		AlignTolerance: alignTolerance,
		PDThreatRange:  pdThreatRange,
	}
}

// Decide computes one tick's orders for ship against target. threatRange is
// the distance to the nearest incoming hostile ordnance, or a negative value
// when nothing threatens the ship.
func (c *Controller) Decide(ship, target *entity.Ship, threatRange float64) Decision {
	decision := Decision{FireSlot: -1}
	if ship == nil || target == nil || !target.Active {
		return decision
	}

	toTarget := target.Position.Sub(ship.Position)
	distance := toTarget.Length()
	diff := angleDiff(toTarget.Angle(), ship.Heading)

	if diff > c.AlignTolerance {
		decision.TurnRight = true
	} else if diff < -c.AlignTolerance {
		decision.TurnLeft = true
	}

	if distance > c.PreferredRange {
		decision.Thrust = true
	}

	if math.Abs(diff) <= c.AlignTolerance {
		decision.FireSlot = c.pickWeapon(ship, distance)
	}

	c.decidePointDefense(ship, threatRange, &decision)
	return decision
}

// pickWeapon chooses the first mount that is in range and would accept a
// fire request. Checking CanFire here is what makes the AI heat-aware: a
// request that would be denied is simply never issued.
func (c *Controller) pickWeapon(ship *entity.Ship, distance float64) int {
	for slot, mount := range ship.Mounts {
		if distance > mount.Spec.Range {
			continue
		}
		if !mount.CanFire() {
			continue
		}
		return slot
	}
	return -1
}

func (c *Controller) decidePointDefense(ship *entity.Ship, threatRange float64, decision *Decision) {
	threatened := threatRange >= 0 && threatRange <= c.PDThreatRange

	if threatened && ship.PD.CanBurst() {
		decision.PDBurst = true
		return
	}

	// Reload opportunistically while nothing is inbound.
	if !threatened && ship.PD.Ammo == 0 && !ship.PD.Reloading() {
		decision.PDReload = true
	}
}

// angleDiff returns the signed smallest rotation from heading to want, in
// (-π, π].
func angleDiff(want, heading float64) float64 {
	diff := math.Mod(want-heading, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	}
	if diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}
