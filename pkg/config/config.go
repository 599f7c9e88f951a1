// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opd-ai/go-outpost/pkg/entity"
)

// ScenarioConfig describes one match: arena, player and enemy hulls, weapon
// tuning, and the wave schedule.
type ScenarioConfig struct {
	WorldSize float64 `json:"worldSize"`
	TimeStep  float64 `json:"timeStep"`
	Seed      uint64  `json:"seed"`

	Player ShipConfig `json:"player"`
	Enemy  ShipConfig `json:"enemy"`

	EnemyCount  int     `json:"enemyCount"`
	SpawnRadius float64 `json:"spawnRadius"`

	Waves []WaveConfig `json:"waves"`

	Weapons WeaponTuning       `json:"weapons"`
	PD      PointDefenseConfig `json:"pointDefense"`
	AI      AIConfig           `json:"ai"`
}

// ShipConfig tunes one hull class.
type ShipConfig struct {
	MaxHull  int     `json:"maxHull"`
	Thrust   float64 `json:"thrust"`
	TurnRate float64 `json:"turnRate"`
	MaxSpeed float64 `json:"maxSpeed"`
	Radius   float64 `json:"radius"`
}

// Stats converts the config into entity stats.
func (c ShipConfig) Stats() entity.ShipStats {
	return entity.ShipStats{
		MaxHull:  c.MaxHull,
		Thrust:   c.Thrust,
		TurnRate: c.TurnRate,
		MaxSpeed: c.MaxSpeed,
		Radius:   c.Radius,
	}
}

// WaveConfig describes one follow-up enemy wave. A wave launches a fixed
// delay after the previous wave is cleared.
type WaveConfig struct {
	Enemies    int     `json:"enemies"`
	HullBonus  int     `json:"hullBonus"`
	DelayTicks int     `json:"delayTicks"`
	Radius     float64 `json:"radius"`
}

// WeaponTuning collects the per-kind weapon specs.
type WeaponTuning struct {
	Laser   WeaponConfig `json:"laser"`
	Railgun WeaponConfig `json:"railgun"`
	Missile WeaponConfig `json:"missile"`
}

// WeaponConfig tunes one weapon kind. Fields not meaningful for a kind are
// left zero (e.g. Speed for the hitscan laser).
type WeaponConfig struct {
	Damage        int     `json:"damage"`
	Range         float64 `json:"range"`
	Speed         float64 `json:"speed"`
	HeatPerShot   float64 `json:"heatPerShot"`
	HeatMax       float64 `json:"heatMax"`
	HeatRelease   float64 `json:"heatRelease"`
	CoolRate      float64 `json:"coolRate"`
	CooldownTicks int     `json:"cooldownTicks"`

	DeltaVBudget   float64 `json:"deltaVBudget,omitempty"`
	CorrectionRate float64 `json:"correctionRate,omitempty"`
	LifetimeTicks  int     `json:"lifetimeTicks,omitempty"`
}

// Spec converts the config into a weapon spec of the given kind.
func (c WeaponConfig) Spec(kind entity.WeaponKind) entity.WeaponSpec {
	return entity.WeaponSpec{
		Kind:           kind,
		Damage:         c.Damage,
		Range:          c.Range,
		Speed:          c.Speed,
		HeatPerShot:    c.HeatPerShot,
		HeatMax:        c.HeatMax,
		HeatRelease:    c.HeatRelease,
		CoolRate:       c.CoolRate,
		CooldownTicks:  c.CooldownTicks,
		DeltaVBudget:   c.DeltaVBudget,
		CorrectionRate: c.CorrectionRate,
		LifetimeTicks:  c.LifetimeTicks,
	}
}

// PointDefenseConfig tunes the interceptor system.
type PointDefenseConfig struct {
	MaxAmmo     int     `json:"maxAmmo"`
	ReloadTicks int     `json:"reloadTicks"`
	Range       float64 `json:"range"`
	TTIWindow   float64 `json:"ttiWindow"`
	ShotSpeed   float64 `json:"shotSpeed"`
	Damage      int     `json:"damage"`
}

// State converts the config into a fresh PD state with a full magazine.
func (c PointDefenseConfig) State() entity.PointDefenseState {
	return entity.PointDefenseState{
		Ammo:        c.MaxAmmo,
		MaxAmmo:     c.MaxAmmo,
		ReloadTicks: c.ReloadTicks,
		Range:       c.Range,
		TTIWindow:   c.TTIWindow,
		ShotSpeed:   c.ShotSpeed,
		Damage:      c.Damage,
	}
}

// AIConfig tunes the enemy controller.
type AIConfig struct {
	PreferredRange float64 `json:"preferredRange"`
	AlignTolerance float64 `json:"alignTolerance"`
	PDThreatRange  float64 `json:"pdThreatRange"`
}

// LoadConfig loads a scenario from a JSON file.
func LoadConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ScenarioConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves a scenario to a JSON file.
func SaveConfig(cfg *ScenarioConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock scenario: one Concord craft against three
// Mandate raiders plus two follow-up waves, at 60 simulation ticks per
// second.
func DefaultConfig() *ScenarioConfig {
	return &ScenarioConfig{
		WorldSize: 2400,
		TimeStep:  1.0 / 60.0,
		Seed:      1,
		Player: ShipConfig{
			MaxHull:  100,
			Thrust:   180,
			TurnRate: 3.0,
			MaxSpeed: 300,
			Radius:   14,
		},
		Enemy: ShipConfig{
			MaxHull:  60,
			Thrust:   150,
			TurnRate: 2.5,
			MaxSpeed: 260,
			Radius:   14,
		},
		EnemyCount:  3,
		SpawnRadius: 700,
		Waves: []WaveConfig{
			{Enemies: 4, HullBonus: 10, DelayTicks: 300, Radius: 750},
			{Enemies: 5, HullBonus: 20, DelayTicks: 300, Radius: 800},
		},
		Weapons: WeaponTuning{
			Laser: WeaponConfig{
				Damage:      2,
				Range:       600,
				HeatPerShot: 4,
				HeatMax:     100,
				HeatRelease: 70,
				CoolRate:    20,
			},
			Railgun: WeaponConfig{
				Damage:        40,
				Range:         1400,
				Speed:         900,
				HeatPerShot:   35,
				HeatMax:       100,
				HeatRelease:   70,
				CoolRate:      10,
				CooldownTicks: 45,
			},
			Missile: WeaponConfig{
				Damage:         30,
				Range:          1600,
				Speed:          350,
				HeatPerShot:    20,
				HeatMax:        100,
				HeatRelease:    70,
				CoolRate:       15,
				DeltaVBudget:   240,
				CorrectionRate: 120,
				LifetimeTicks:  600,
			},
		},
		PD: PointDefenseConfig{
			MaxAmmo:     8,
			ReloadTicks: 180,
			Range:       260,
			TTIWindow:   1.5,
			ShotSpeed:   700,
			Damage:      1,
		},
		AI: AIConfig{
			PreferredRange: 420,
			AlignTolerance: 0.15,
			PDThreatRange:  300,
		},
	}
}
