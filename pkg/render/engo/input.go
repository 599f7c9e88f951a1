// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-outpost/pkg/input"
)

// InputSystem samples engo button state each frame and writes it into the
// game's input buffer. Held buttons map to level state, JustPressed edges to
// discrete presses; the simulation drains the buffer at its own tick rate.
type InputSystem struct {
	buffer *input.Buffer
}

// NewInputSystem creates an input system feeding the given buffer.
func NewInputSystem(buffer *input.Buffer) *InputSystem {
	return &InputSystem{buffer: buffer}
}

// Add satisfies the ecs.System interface.
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for the input system.
}

// Remove satisfies the ecs.System interface.
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for the input system.
}

// Update forwards the current frame's input to the buffer.
func (is *InputSystem) Update(dt float32) {
	is.buffer.SetHeld(input.Thrust, engo.Input.Button(btnThrust).Down())
	is.buffer.SetHeld(input.RotateLeft, engo.Input.Button(btnTurnLeft).Down())
	is.buffer.SetHeld(input.RotateRight, engo.Input.Button(btnTurnRight).Down())
	is.buffer.SetHeld(input.Fire, engo.Input.Button(btnFire).Down())

	edges := []struct {
		button string
		cmd    input.Command
	}{
		{btnFire, input.Fire},
		{btnWeapon1, input.SelectWeapon1},
		{btnWeapon2, input.SelectWeapon2},
		{btnWeapon3, input.SelectWeapon3},
		{btnPDBurst, input.PDBurst},
		{btnPDReload, input.PDReload},
		{btnQuit, input.Quit},
	}
	for _, e := range edges {
		if engo.Input.Button(e.button).JustPressed() {
			is.buffer.Press(e.cmd)
		}
	}
}
