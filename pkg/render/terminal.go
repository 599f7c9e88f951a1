// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

const hudRows = 3

// Glyphs per renderable kind. Ship glyphs rotate with heading.
var headingGlyphs = []rune{'>', 'v', '<', '^'}

// TerminalRenderer draws the arena and HUD on a tcell screen. The view is
// centered on the player and scaled so the whole arena fits the cell grid.
type TerminalRenderer struct {
	screen tcell.Screen
	styles struct {
		background tcell.Style
		concord    tcell.Style
		mandate    tcell.Style
		ordnance   tcell.Style
		hud        tcell.Style
		warning    tcell.Style
	}
}

// NewTerminalRenderer creates a renderer on an initialized tcell screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen}
	r.styles.background = tcell.StyleDefault.Background(tcell.ColorBlack)
	r.styles.concord = r.styles.background.Foreground(tcell.ColorAqua).Bold(true)
	r.styles.mandate = r.styles.background.Foreground(tcell.ColorRed).Bold(true)
	r.styles.ordnance = r.styles.background.Foreground(tcell.ColorYellow)
	r.styles.hud = r.styles.background.Foreground(tcell.ColorWhite)
	r.styles.warning = r.styles.background.Foreground(tcell.ColorOrange).Bold(true)
	return r
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(snap *engine.FrameSnapshot) {
	r.screen.Clear()

	width, height := r.screen.Size()
	gameHeight := height - hudRows
	if width < 10 || gameHeight < 5 {
		r.screen.Show()
		return
	}

	center := r.viewCenter(snap)
	// Terminal cells are roughly twice as tall as wide; stretch X to keep
	// the arena visually square.
	scaleY := snap.WorldSize / float64(gameHeight)
	scaleX := scaleY / 2

	for _, ord := range snap.Ordnance {
		x, y := r.worldToScreen(ord.Position, center, scaleX, scaleY, width, gameHeight)
		if x < 0 || x >= width || y < 0 || y >= gameHeight {
			continue
		}
		r.screen.SetContent(x, y, ordnanceGlyph(ord.Kind), nil, r.styles.ordnance)
	}

	for _, ship := range snap.Ships {
		x, y := r.worldToScreen(ship.Position, center, scaleX, scaleY, width, gameHeight)
		if x < 0 || x >= width || y < 0 || y >= gameHeight {
			continue
		}
		style := r.styles.mandate
		if ship.Faction == entity.Concord {
			style = r.styles.concord
		}
		r.screen.SetContent(x, y, shipGlyph(ship.Heading), nil, style)
	}

	r.drawHUD(snap, width, gameHeight)

	if snap.StatusText != "" {
		r.drawCentered(snap.StatusText, width, gameHeight/2)
	}

	r.screen.Show()
}

// Close implements Renderer.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

// viewCenter follows the player; after the player is gone it holds the
// arena origin.
func (r *TerminalRenderer) viewCenter(snap *engine.FrameSnapshot) physics.Vector2D {
	for _, ship := range snap.Ships {
		if ship.IsPlayer {
			return ship.Position
		}
	}
	return physics.Vector2D{}
}

func (r *TerminalRenderer) worldToScreen(pos, center physics.Vector2D, scaleX, scaleY float64, width, height int) (int, int) {
	x := int((pos.X-center.X)/scaleX) + width/2
	y := int((pos.Y-center.Y)/scaleY) + height/2
	return x, y
}

// drawHUD renders hull, heat, and PD gauges for the player plus the match
// status line.
func (r *TerminalRenderer) drawHUD(snap *engine.FrameSnapshot, width, top int) {
	var player *engine.ShipView
	for i := range snap.Ships {
		if snap.Ships[i].IsPlayer {
			player = &snap.Ships[i]
			break
		}
	}

	line1 := fmt.Sprintf("Tick %d  Score %d  Wave %d/%d  Hostiles %d",
		snap.Tick, snap.Score, snap.Wave, snap.TotalWaves, countMandate(snap))
	r.drawText(0, top, line1, r.styles.hud)

	if player == nil {
		return
	}

	line2 := fmt.Sprintf("Hull %s", gauge(player.HullFraction, 10))
	for i, heat := range player.Heat {
		marker := " "
		if i == player.Selected {
			marker = "*"
		}
		tag := fmt.Sprintf("  %s%s %s", marker, heat.Label, gauge(heat.Fraction, 6))
		if heat.Overheated {
			tag += "!"
		}
		line2 += tag
	}
	r.drawText(0, top+1, line2, r.styles.hud)

	pdText := fmt.Sprintf("PD %d/%d", player.PDAmmo, player.PDAmmoMax)
	if player.PDReloading {
		pdText = "PD RELOADING"
	}
	style := r.styles.hud
	if player.PDReloading || player.PDAmmo == 0 {
		style = r.styles.warning
	}
	r.drawText(0, top+2, pdText, style)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawCentered(text string, width, y int) {
	x := (width - len(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, text, r.styles.warning)
}

// shipGlyph picks an arrow for the heading quadrant.
func shipGlyph(heading float64) rune {
	quadrant := int(math.Round(heading/(math.Pi/2))) % 4
	if quadrant < 0 {
		quadrant += 4
	}
	return headingGlyphs[quadrant]
}

func ordnanceGlyph(kind entity.Kind) rune {
	switch kind {
	case entity.KindMissile:
		return 'M'
	case entity.KindPDShot:
		return '\''
	default:
		return '.'
	}
}

// gauge renders a fraction as a fixed-width bar.
func gauge(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(math.Round(fraction * float64(width)))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return "[" + string(bar) + "]"
}

func countMandate(snap *engine.FrameSnapshot) int {
	n := 0
	for _, ship := range snap.Ships {
		if ship.Faction == entity.Mandate {
			n++
		}
	}
	return n
}
