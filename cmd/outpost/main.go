// cmd/outpost/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-outpost/pkg/audio"
	"github.com/opd-ai/go-outpost/pkg/config"
	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/input"
	"github.com/opd-ai/go-outpost/pkg/logging"
	"github.com/opd-ai/go-outpost/pkg/render"
	engorender "github.com/opd-ai/go-outpost/pkg/render/engo"
)

// Terminal key auto-repeat arrives as discrete press events, so held state
// is inferred: a press arms the command and it releases when repeats stop.
const keyHoldWindow = 200 * time.Millisecond

func main() {
	configPath := flag.String("config", "scenario.json", "Path to scenario configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	sound := flag.Bool("sound", false, "Enable synthesized sound effects")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	width := flag.Int("width", 1024, "Window width (engo only)")
	height := flag.Int("height", 768, "Window height (engo only)")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	var cfg *config.ScenarioConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using defaults", "path", *configPath)
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

	game := engine.NewGame(cfg)

	if *sound {
		manager := audio.NewManager()
		if err := manager.Initialize(); err != nil {
			logger.Warn(ctx, "audio unavailable", "error", err)
		} else {
			manager.Attach(game.EventBus())
			defer manager.Cleanup()
		}
	}

	switch *renderer {
	case "engo":
		runEngo(game, *width, *height, *fullscreen)
	case "terminal":
		fallthrough
	default:
		if err := runTerminal(game, logger); err != nil {
			log.Fatalf("Terminal client failed: %v", err)
		}
	}
}

// runEngo hands the frame loop to engo; the scene advances the simulation.
func runEngo(game *engine.Game, width, height int, fullscreen bool) {
	scene := engorender.NewGameScene(game)
	opts := engo.RunOptions{
		Title:      "Outpost Sigma",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}
	engo.Run(opts, scene)
}

// runTerminal owns the frame loop: a goroutine translates tcell key events
// into input commands while the main loop paces the fixed-step simulation
// and renders each snapshot.
func runTerminal(game *engine.Game, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	r := render.NewTerminalRenderer(screen)
	defer r.Close()

	held := newHeldKeys(game.Input())
	restartCh := make(chan struct{}, 1)
	go pollKeys(screen, game, held, restartCh)

	acc := engine.NewAccumulator(game.Config.TimeStep, 0.25)
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-restartCh:
			if game.Phase != engine.PhaseActive {
				game.Reset()
				acc.Reset()
				last = time.Now()
			}
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now

			held.expire(now)
			acc.Advance(elapsed, game.Advance)
			r.Render(game.Snapshot())

			if game.QuitRequested() {
				logger.Info(context.Background(), "match over",
					"phase", game.Phase.String(), "score", game.Score, "tick", game.Tick)
				return nil
			}
		}
	}
}

// pollKeys drains the tcell event queue and feeds the input buffer.
func pollKeys(screen tcell.Screen, game *engine.Game, held *heldKeys, restartCh chan<- struct{}) {
	buffer := game.Input()
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyLeft:
				held.press(input.RotateLeft)
			case tcell.KeyRight:
				held.press(input.RotateRight)
			case tcell.KeyUp:
				held.press(input.Thrust)
			case tcell.KeyEscape, tcell.KeyCtrlC:
				buffer.Press(input.Quit)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a', 'A':
					held.press(input.RotateLeft)
				case 'd', 'D':
					held.press(input.RotateRight)
				case 'w', 'W':
					held.press(input.Thrust)
				case ' ':
					held.press(input.Fire)
					buffer.Press(input.Fire)
				case '1':
					buffer.Press(input.SelectWeapon1)
				case '2':
					buffer.Press(input.SelectWeapon2)
				case '3':
					buffer.Press(input.SelectWeapon3)
				case 'b', 'B':
					buffer.Press(input.PDBurst)
				case 'x', 'X':
					buffer.Press(input.PDReload)
				case 'r', 'R':
					select {
					case restartCh <- struct{}{}:
					default:
					}
				case 'q', 'Q':
					buffer.Press(input.Quit)
				}
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return
		}
	}
}

// heldKeys converts discrete key-repeat events into level-triggered held
// state with a release timeout.
type heldKeys struct {
	mu        sync.Mutex
	buffer    *input.Buffer
	deadlines map[input.Command]time.Time
}

func newHeldKeys(buffer *input.Buffer) *heldKeys {
	return &heldKeys{
		buffer:    buffer,
		deadlines: make(map[input.Command]time.Time),
	}
}

// press arms the command and refreshes its release deadline.
func (h *heldKeys) press(cmd input.Command) {
	h.mu.Lock()
	h.deadlines[cmd] = time.Now().Add(keyHoldWindow)
	h.mu.Unlock()
	h.buffer.SetHeld(cmd, true)
}

// expire releases commands whose repeat stream has gone quiet.
func (h *heldKeys) expire(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cmd, deadline := range h.deadlines {
		if now.After(deadline) {
			delete(h.deadlines, cmd)
			h.buffer.SetHeld(cmd, false)
		}
	}
}
