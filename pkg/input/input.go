// Package input defines the discrete command contract between a host (tcell
// client, engo client, scripted runner) and the simulation core. Rotation,
// thrust, and fire are level-triggered held state; weapon selection, point
// defense, and quit are edge-triggered presses. Commands collect in a Buffer
// between ticks and are drained atomically at the start of the next tick, so
// a tick never observes a half-applied input frame.
package input

import "sync"

// Command is one discrete input command.
type Command int

const (
	RotateLeft Command = iota
	RotateRight
	Thrust
	Fire
	SelectWeapon1
	SelectWeapon2
	SelectWeapon3
	PDBurst
	PDReload
	Quit
)

// String returns the command name
func (c Command) String() string {
	switch c {
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case Thrust:
		return "thrust"
	case Fire:
		return "fire"
	case SelectWeapon1:
		return "select_weapon_1"
	case SelectWeapon2:
		return "select_weapon_2"
	case SelectWeapon3:
		return "select_weapon_3"
	case PDBurst:
		return "pd_burst"
	case PDReload:
		return "pd_reload"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Frame is the input state applied at the start of one tick.
type Frame struct {
	// Held state sampled when the frame was drained.
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
	Fire        bool

	// Edge-triggered presses since the previous drain, in arrival order.
	Pressed []Command
}

// Buffer accumulates host input between ticks. Hosts write from their event
// loop; the orchestrator drains once per tick. Safe for that one-writer,
// one-reader pattern from different goroutines.
type Buffer struct {
	mu      sync.Mutex
	held    map[Command]bool
	pressed []Command
}

// NewBuffer creates an empty input buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		held: make(map[Command]bool),
	}
}

// SetHeld records level-triggered state for rotation, thrust, and fire.
// Other commands are ignored.
func (b *Buffer) SetHeld(cmd Command, down bool) {
	switch cmd {
	case RotateLeft, RotateRight, Thrust, Fire:
	default:
		return
	}
	b.mu.Lock()
	b.held[cmd] = down
	b.mu.Unlock()
}

// Press records an edge-triggered command. Held-state commands may also be
// delivered as presses (a tap), which registers them for one frame.
func (b *Buffer) Press(cmd Command) {
	b.mu.Lock()
	b.pressed = append(b.pressed, cmd)
	b.mu.Unlock()
}

// Drain returns the frame to apply this tick and clears the press queue.
// Held state persists across drains until the host releases it.
func (b *Buffer) Drain() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := Frame{
		RotateLeft:  b.held[RotateLeft],
		RotateRight: b.held[RotateRight],
		Thrust:      b.held[Thrust],
		Fire:        b.held[Fire],
		Pressed:     b.pressed,
	}
	b.pressed = nil

	// A tap of a held-state command counts as held for this one frame.
	for _, cmd := range frame.Pressed {
		switch cmd {
		case RotateLeft:
			frame.RotateLeft = true
		case RotateRight:
			frame.RotateRight = true
		case Thrust:
			frame.Thrust = true
		case Fire:
			frame.Fire = true
		}
	}

	return frame
}

// Reset clears all held state and queued presses.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.held = make(map[Command]bool)
	b.pressed = nil
	b.mu.Unlock()
}
