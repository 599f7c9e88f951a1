// pkg/entity/weapon_test.go
package entity

import (
	"testing"
)

func railgunSpec() WeaponSpec {
	return WeaponSpec{
		Kind:          Railgun,
		Damage:        40,
		Range:         1400,
		Speed:         900,
		HeatPerShot:   35,
		HeatMax:       100,
		HeatRelease:   70,
		CoolRate:      10,
		CooldownTicks: 45,
	}
}

func laserSpec() WeaponSpec {
	return WeaponSpec{
		Kind:        Laser,
		Damage:      2,
		Range:       600,
		HeatPerShot: 4,
		HeatMax:     100,
		HeatRelease: 70,
		CoolRate:    20,
	}
}

func TestMount_FireStartsCooldown(t *testing.T) {
	m := NewMount(railgunSpec())

	if got := m.Fire(); got != FireOK {
		t.Fatalf("first Fire() = %v, expected FireOK", got)
	}
	if m.CooldownLeft != 45 {
		t.Errorf("CooldownLeft = %d, expected 45", m.CooldownLeft)
	}

	if got := m.Fire(); got != FireDeniedCooldown {
		t.Errorf("Fire() during cooldown = %v, expected FireDeniedCooldown", got)
	}
}

func TestMount_CooldownCountsDown(t *testing.T) {
	m := NewMount(railgunSpec())
	m.Fire()

	for i := 0; i < 45; i++ {
		if m.CanFire() {
			t.Fatalf("CanFire() true with %d cooldown ticks left", m.CooldownLeft)
		}
		m.Tick(1.0 / 60.0)
	}
	if !m.CanFire() {
		t.Error("expected CanFire() after cooldown elapsed")
	}
}

func TestMount_FireDeniedOverheat(t *testing.T) {
	m := NewMount(laserSpec())
	m.Heat.Heat = 100
	m.Heat.Overheated = true

	if got := m.Fire(); got != FireDeniedOverheat {
		t.Errorf("Fire() while overheated = %v, expected FireDeniedOverheat", got)
	}
}

func TestMount_DenialChangesNoState(t *testing.T) {
	m := NewMount(railgunSpec())
	m.Fire()
	heatAfterFirst := m.Heat.Heat
	cooldownAfterFirst := m.CooldownLeft

	m.Fire() // denied by cooldown

	if m.Heat.Heat != heatAfterFirst {
		t.Errorf("denied fire changed heat: %v -> %v", heatAfterFirst, m.Heat.Heat)
	}
	if m.CooldownLeft != cooldownAfterFirst {
		t.Errorf("denied fire changed cooldown: %d -> %d", cooldownAfterFirst, m.CooldownLeft)
	}
}

func TestMount_DenialLatchOncePerLockout(t *testing.T) {
	m := NewMount(laserSpec())
	m.Heat.Heat = 100
	m.Heat.Overheated = true

	if m.Fire() != FireDeniedOverheat {
		t.Fatal("expected overheat denial")
	}
	if !m.LatchDenial() {
		t.Error("first denial of the lockout must report")
	}
	for i := 0; i < 5; i++ {
		m.Fire()
		if m.LatchDenial() {
			t.Fatal("repeat denial reported during the same lockout")
		}
	}

	// Cool until the lockout releases; the latch rearms with CanFire.
	for i := 0; i < 600 && !m.CanFire(); i++ {
		m.Tick(1.0 / 60.0)
	}
	if !m.CanFire() {
		t.Fatal("mount never recovered from the lockout")
	}

	m.Heat.Heat = 100
	m.Heat.Overheated = true
	m.Fire()
	if !m.LatchDenial() {
		t.Error("denial after recovery must report again")
	}
}

func TestPointDefense_BurstConsumesOneAmmo(t *testing.T) {
	pd := PointDefenseState{Ammo: 8, MaxAmmo: 8, ReloadTicks: 180}

	if !pd.Burst() {
		t.Fatal("Burst() with full magazine failed")
	}
	if pd.Ammo != 7 {
		t.Errorf("Ammo = %d, expected 7", pd.Ammo)
	}
}

func TestPointDefense_BurstDeniedWhenEmpty(t *testing.T) {
	pd := PointDefenseState{Ammo: 0, MaxAmmo: 8, ReloadTicks: 180}
	if pd.Burst() {
		t.Error("Burst() with empty magazine must fail")
	}
}

func TestPointDefense_ReloadCycle(t *testing.T) {
	pd := PointDefenseState{Ammo: 2, MaxAmmo: 8, ReloadTicks: 3}

	if !pd.StartReload() {
		t.Fatal("StartReload() failed")
	}
	if !pd.Reloading() {
		t.Fatal("expected Reloading() during reload")
	}
	if pd.Burst() {
		t.Error("Burst() during reload must fail")
	}
	if pd.StartReload() {
		t.Error("StartReload() during reload must fail")
	}

	pd.Tick()
	pd.Tick()
	if !pd.Reloading() {
		t.Fatal("reload finished early")
	}
	pd.Tick()

	if pd.Reloading() {
		t.Error("still reloading after the full duration")
	}
	if pd.Ammo != 8 {
		t.Errorf("Ammo = %d, expected refilled to 8", pd.Ammo)
	}
}

func TestPointDefense_ReloadRefusedWhenFull(t *testing.T) {
	pd := PointDefenseState{Ammo: 8, MaxAmmo: 8, ReloadTicks: 180}
	if pd.StartReload() {
		t.Error("StartReload() with full magazine must fail")
	}
}

func TestPointDefense_AmmoFraction(t *testing.T) {
	pd := PointDefenseState{Ammo: 2, MaxAmmo: 8}
	if got := pd.AmmoFraction(); got != 0.25 {
		t.Errorf("AmmoFraction() = %v, expected 0.25", got)
	}

	var zero PointDefenseState
	if zero.AmmoFraction() != 0 {
		t.Errorf("zero-max AmmoFraction() = %v, expected 0", zero.AmmoFraction())
	}
}

func TestWeaponKind_String(t *testing.T) {
	tests := []struct {
		kind     WeaponKind
		expected string
	}{
		{Laser, "Laser"},
		{Railgun, "Railgun"},
		{MissileLauncher, "Missile"},
		{PointDefense, "PointDefense"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}
