// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-outpost/pkg/engine"
)

// Button names registered with the engo input manager.
const (
	btnThrust    = "thrust"
	btnTurnLeft  = "turnLeft"
	btnTurnRight = "turnRight"
	btnFire      = "fire"
	btnWeapon1   = "weapon1"
	btnWeapon2   = "weapon2"
	btnWeapon3   = "weapon3"
	btnPDBurst   = "pdBurst"
	btnPDReload  = "pdReload"
	btnRestart   = "restart"
	btnQuit      = "quit"
)

const hudFontURL = "fonts/hud.ttf"

// GameScene is the windowed client scene. It owns the simulation and runs it
// locally: engo paces the frame loop, an accumulator converts frame time into
// fixed simulation steps, and the resulting snapshots drive the ECS render
// entities and HUD.
type GameScene struct {
	world *ecs.World

	game     *engine.Game
	renderer *WorldRenderer
	input    *InputSystem
	hud      *HUDSystem
	sim      *SimulationSystem
}

// NewGameScene creates the scene around an existing game.
func NewGameScene(game *engine.Game) *GameScene {
	return &GameScene{
		game:  game,
		world: &ecs.World{},
	}
}

// Type returns the scene type (required by Engo).
func (scene *GameScene) Type() string {
	return "OutpostScene"
}

// Preload is called before the scene starts (required by Engo).
func (scene *GameScene) Preload() {
	// The HUD degrades to gauges-only if the font is missing.
	_ = engo.Files.Load(hudFontURL)
}

// Setup is called when the scene starts (required by Engo).
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)

	scene.world.AddSystem(&common.RenderSystem{})

	registerButtons()

	scene.renderer = NewWorldRenderer(scene.world)

	scene.input = NewInputSystem(scene.game.Input())
	scene.world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(scene.world)
	scene.world.AddSystem(scene.hud)

	scene.sim = NewSimulationSystem(scene.game, scene.renderer, scene.hud)
	scene.world.AddSystem(scene.sim)
}

// Exit is called when the scene ends (required by Engo).
func (scene *GameScene) Exit() {}

func registerButtons() {
	engo.Input.RegisterButton(btnThrust, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(btnTurnLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(btnTurnRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(btnFire, engo.KeySpace)
	engo.Input.RegisterButton(btnWeapon1, engo.KeyOne)
	engo.Input.RegisterButton(btnWeapon2, engo.KeyTwo)
	engo.Input.RegisterButton(btnWeapon3, engo.KeyThree)
	engo.Input.RegisterButton(btnPDBurst, engo.KeyB)
	engo.Input.RegisterButton(btnPDReload, engo.KeyX)
	engo.Input.RegisterButton(btnRestart, engo.KeyR)
	engo.Input.RegisterButton(btnQuit, engo.KeyQ, engo.KeyEscape)
}

// SimulationSystem advances the game at the fixed tick inside the engo frame
// loop and pushes each resulting snapshot to the renderer and HUD.
type SimulationSystem struct {
	game     *engine.Game
	renderer *WorldRenderer
	hud      *HUDSystem
	acc      *engine.Accumulator
}

// NewSimulationSystem creates the system driving the game.
func NewSimulationSystem(game *engine.Game, renderer *WorldRenderer, hud *HUDSystem) *SimulationSystem {
	return &SimulationSystem{
		game:     game,
		renderer: renderer,
		hud:      hud,
		acc:      engine.NewAccumulator(game.Config.TimeStep, 0.25),
	}
}

// Add satisfies the ecs.System interface.
func (s *SimulationSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for the simulation system.
}

// Remove satisfies the ecs.System interface.
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {
	// Not used for the simulation system.
}

// Update runs owed simulation steps for this frame and syncs the view.
func (s *SimulationSystem) Update(dt float32) {
	s.acc.Advance(float64(dt), s.game.Advance)

	snap := s.game.Snapshot()

	if snap.Phase != engine.PhaseActive && engo.Input.Button(btnRestart).JustPressed() {
		s.game.Reset()
		s.acc.Reset()
		snap = s.game.Snapshot()
	}

	s.renderer.Sync(snap)
	s.hud.Sync(snap)
	s.followPlayer(snap)

	if s.game.QuitRequested() {
		engo.Exit()
	}
}

// followPlayer recenters the camera on the player's craft.
func (s *SimulationSystem) followPlayer(snap *engine.FrameSnapshot) {
	for i := range snap.Ships {
		if !snap.Ships[i].IsPlayer {
			continue
		}
		x, y := worldToRender(snap.Ships[i].Position, snap.WorldSize)
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis: common.XAxis, Value: x, Incremental: false,
		})
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis: common.YAxis, Value: y, Incremental: false,
		})
		return
	}
}
