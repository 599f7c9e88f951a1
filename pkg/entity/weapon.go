// pkg/entity/weapon.go
package entity

// WeaponKind enumerates the closed set of weapon variants. Behavior differences
// are driven by the spec table rather than subclassing; the engine switches on
// the kind when resolving a successful fire.
type WeaponKind int

const (
	Laser WeaponKind = iota
	Railgun
	MissileLauncher
	PointDefense
)

// String returns the weapon name
func (k WeaponKind) String() string {
	switch k {
	case Laser:
		return "Laser"
	case Railgun:
		return "Railgun"
	case MissileLauncher:
		return "Missile"
	case PointDefense:
		return "PointDefense"
	default:
		return "Unknown"
	}
}

// WeaponSpec is the tuning table for one weapon kind.
type WeaponSpec struct {
	Kind   WeaponKind
	Damage int
	Range  float64
	Speed  float64 // ordnance muzzle speed; zero for hitscan

	HeatPerShot float64
	HeatMax     float64
	HeatRelease float64
	CoolRate    float64

	// Discrete fire-rate limiter, separate from heat. Railgun only.
	CooldownTicks int

	// Missile only.
	DeltaVBudget   float64
	CorrectionRate float64 // Δv spendable per second on course corrections
	LifetimeTicks  int
}

// FireResult reports the outcome of a fire attempt. A denial is a normal
// rejected action, not an error.
type FireResult int

const (
	FireOK FireResult = iota
	FireDeniedOverheat
	FireDeniedCooldown
)

// String returns the result name
func (r FireResult) String() string {
	switch r {
	case FireOK:
		return "ok"
	case FireDeniedOverheat:
		return "denied_overheat"
	case FireDeniedCooldown:
		return "denied_cooldown"
	default:
		return "unknown"
	}
}

// Mount is one weapon fitted to a ship: the spec plus its live thermal and
// fire-rate state.
type Mount struct {
	Spec         WeaponSpec
	Heat         HeatState
	CooldownLeft int

	denialReported bool
}

// NewMount fits a weapon spec to a fresh mount.
func NewMount(spec WeaponSpec) *Mount {
	return &Mount{
		Spec: spec,
		Heat: NewHeatState(spec.HeatMax, spec.HeatRelease, spec.CoolRate),
	}
}

// CanFire reports whether a fire attempt right now would succeed.
func (m *Mount) CanFire() bool {
	if m.CooldownLeft > 0 {
		return false
	}
	return m.Heat.CanAccept(m.Spec.HeatPerShot)
}

// Fire attempts to discharge the weapon, paying heat and starting the
// fire-rate cooldown on success. The caller spawns any resulting ordnance.
func (m *Mount) Fire() FireResult {
	if m.CooldownLeft > 0 {
		return FireDeniedCooldown
	}
	if !m.Heat.AddHeat(m.Spec.HeatPerShot) {
		return FireDeniedOverheat
	}
	m.CooldownLeft = m.Spec.CooldownTicks
	m.denialReported = false
	return FireOK
}

// LatchDenial reports whether a denial should be surfaced to observers. A
// held trigger retries every tick, so the first denial of a lockout returns
// true and repeats stay quiet until the mount can fire again.
func (m *Mount) LatchDenial() bool {
	if m.denialReported {
		return false
	}
	m.denialReported = true
	return true
}

// Tick advances thermal cooldown and the fire-rate timer by one step. Once
// the mount can fire again the denial latch rearms.
func (m *Mount) Tick(dt float64) {
	m.Heat.Cool(dt)
	if m.CooldownLeft > 0 {
		m.CooldownLeft--
	}
	if m.denialReported && m.CanFire() {
		m.denialReported = false
	}
}

// PointDefenseState tracks the ship's interceptor magazine and reload cycle.
type PointDefenseState struct {
	Ammo            int
	MaxAmmo         int
	ReloadTicks     int
	ReloadTicksLeft int

	Range     float64
	TTIWindow float64 // seconds-to-impact window for target selection
	ShotSpeed float64
	Damage    int
}

// Reloading reports whether a reload is in progress.
func (pd *PointDefenseState) Reloading() bool {
	return pd.ReloadTicksLeft > 0
}

// CanBurst reports whether a burst may be fired now.
func (pd *PointDefenseState) CanBurst() bool {
	return pd.Ammo > 0 && !pd.Reloading()
}

// Burst consumes exactly one ammo unit. Returns false when empty or
// reloading; the caller spawns interceptor shots on success.
func (pd *PointDefenseState) Burst() bool {
	if !pd.CanBurst() {
		return false
	}
	pd.Ammo--
	return true
}

// StartReload begins the timed reload. A reload already in progress is not
// restarted, and a full magazine refuses the request.
func (pd *PointDefenseState) StartReload() bool {
	if pd.Reloading() || pd.Ammo == pd.MaxAmmo {
		return false
	}
	pd.ReloadTicksLeft = pd.ReloadTicks
	return true
}

// Tick counts the reload down, refilling the magazine when it completes.
func (pd *PointDefenseState) Tick() {
	if pd.ReloadTicksLeft == 0 {
		return
	}
	pd.ReloadTicksLeft--
	if pd.ReloadTicksLeft == 0 {
		pd.Ammo = pd.MaxAmmo
	}
}

// AmmoFraction returns remaining ammo normalized to 0..1.
func (pd *PointDefenseState) AmmoFraction() float64 {
	if pd.MaxAmmo <= 0 {
		return 0
	}
	return float64(pd.Ammo) / float64(pd.MaxAmmo)
}
