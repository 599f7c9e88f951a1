// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by ApplyEnvOverrides.
const (
	EnvWorldSize  = "OUTPOST_WORLD_SIZE"
	EnvEnemyCount = "OUTPOST_ENEMY_COUNT"
	EnvSeed       = "OUTPOST_SEED"
	EnvTimeStep   = "OUTPOST_TIME_STEP"
)

// ApplyEnvOverrides mutates cfg with any OUTPOST_* overrides present in the
// environment. Unset variables leave the config untouched; malformed values
// are reported rather than silently ignored.
func ApplyEnvOverrides(cfg *ScenarioConfig) error {
	if v, err := envFloat(EnvWorldSize); err != nil {
		return err
	} else if v != nil {
		cfg.WorldSize = *v
	}

	if v, err := envFloat(EnvTimeStep); err != nil {
		return err
	} else if v != nil {
		cfg.TimeStep = *v
	}

	if v, err := envInt(EnvEnemyCount); err != nil {
		return err
	} else if v != nil {
		cfg.EnemyCount = *v
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}

	return cfg.Validate()
}

// Validate rejects configurations the simulation cannot run with.
func (c *ScenarioConfig) Validate() error {
	if c.WorldSize <= 0 {
		return fmt.Errorf("worldSize must be positive, got %v", c.WorldSize)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("timeStep must be positive, got %v", c.TimeStep)
	}
	if c.EnemyCount < 0 {
		return fmt.Errorf("enemyCount must not be negative, got %d", c.EnemyCount)
	}
	if c.Player.MaxHull <= 0 {
		return fmt.Errorf("player maxHull must be positive, got %d", c.Player.MaxHull)
	}
	return nil
}

func envFloat(name string) (*float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &v, nil
}

func envInt(name string) (*int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &v, nil
}
