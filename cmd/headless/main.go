// cmd/headless/main.go

// Headless runner: advances a scenario at full speed without a display.
// Used for balance passes and soak runs; the player craft flies a simple
// scripted profile so matches resolve either way.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/opd-ai/go-outpost/pkg/config"
	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/event"
	"github.com/opd-ai/go-outpost/pkg/input"
	"github.com/opd-ai/go-outpost/pkg/logging"
	"github.com/opd-ai/go-outpost/pkg/render"
)

func main() {
	configPath := flag.String("config", "scenario.json", "Path to scenario configuration file")
	maxTicks := flag.Uint64("ticks", 36000, "Tick limit before the run is abandoned")
	seed := flag.Uint64("seed", 0, "Scenario seed override (0 keeps the configured seed)")
	script := flag.Bool("script", true, "Drive the player with the scripted combat profile")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	var cfg *config.ScenarioConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		cfg = config.DefaultConfig()
	} else {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	game := engine.NewGame(cfg)
	renderer := render.NewNullRenderer()
	defer renderer.Close()

	logEvents(ctx, logger, game.EventBus())

	logger.Info(ctx, "headless run starting",
		"seed", cfg.Seed, "enemies", cfg.EnemyCount, "waves", len(cfg.Waves), "max_ticks", *maxTicks)

	for game.Phase == engine.PhaseActive && game.Tick < *maxTicks {
		if *script {
			scriptTick(game)
		}
		game.Advance(cfg.TimeStep)
		renderer.Render(game.Snapshot())
	}

	logger.Info(ctx, "headless run finished",
		"phase", game.Phase.String(), "tick", game.Tick, "score", game.Score)
}

// scriptTick feeds a crude combat profile: keep turning, keep thrusting in
// bursts, fire the laser continuously, and burst point defense whenever a
// missile is in flight.
func scriptTick(game *engine.Game) {
	buffer := game.Input()

	buffer.SetHeld(input.Thrust, game.Tick%120 < 60)
	buffer.SetHeld(input.RotateRight, game.Tick%240 < 120)
	buffer.SetHeld(input.Fire, true)

	if game.Tick%90 == 0 && len(game.Missiles) > 0 {
		buffer.Press(input.PDBurst)
	}
	if game.Tick%600 == 0 && game.Tick > 0 {
		buffer.Press(input.PDReload)
	}
}

// logEvents mirrors combat events into the structured log.
func logEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "ship destroyed", "ship_id", se.ShipID, "faction", se.Faction)
		}
	})
	bus.Subscribe(event.WaveSpawned, func(e event.Event) {
		if we, ok := e.(*event.WaveEvent); ok {
			logger.Info(ctx, "wave spawned", "wave", we.Wave, "enemies", we.Count)
		}
	})
	bus.Subscribe(event.OrdnanceIntercept, func(e event.Event) {
		if ie, ok := e.(*event.InterceptEvent); ok {
			logger.Info(ctx, "ordnance intercepted", "shot_id", ie.ShotID, "ordnance_id", ie.OrdnanceID)
		}
	})
	bus.Subscribe(event.GameEnded, func(event.Event) {
		logger.Info(ctx, "match ended")
	})
}
