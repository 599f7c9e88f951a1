// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/entity"
)

const (
	hudMargin   = 8
	hudLineStep = 20
	hudFontSize = 14
)

// hudLabel is one screen-space text entity.
type hudLabel struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// HUDSystem renders the match readout: score and wave progress, the player's
// hull, per-weapon heat gauges, point defense ammo, and the terminal banner.
// Labels are fixed-position text entities updated in place each frame.
type HUDSystem struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	font         *common.Font

	status *hudLabel
	ship   *hudLabel
	pd     *hudLabel
	banner *hudLabel
}

// NewHUDSystem creates the HUD. If the font asset failed to preload the HUD
// stays empty rather than failing the scene.
func NewHUDSystem(world *ecs.World) *HUDSystem {
	hud := &HUDSystem{world: world}
	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			hud.renderSystem = rs
		}
	}

	font := &common.Font{
		URL:  hudFontURL,
		FG:   color.White,
		Size: hudFontSize,
	}
	if err := font.CreatePreloaded(); err == nil {
		hud.font = font
		hud.status = hud.newLabel(hudMargin, hudMargin)
		hud.ship = hud.newLabel(hudMargin, hudMargin+hudLineStep)
		hud.pd = hud.newLabel(hudMargin, hudMargin+2*hudLineStep)
		hud.banner = hud.newLabel(hudMargin, hudMargin+4*hudLineStep)
	}
	return hud
}

func (hud *HUDSystem) newLabel(x, y float32) *hudLabel {
	label := &hudLabel{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Text{Font: hud.font, Text: " "},
			Color:    color.White,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
		},
	}
	label.render.SetShader(common.HUDShader)
	label.render.SetZIndex(1000)
	hud.renderSystem.Add(&label.basic, &label.render, &label.space)
	return label
}

// Add satisfies the ecs.System interface.
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for the HUD system.
}

// Remove satisfies the ecs.System interface.
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for the HUD system.
}

// Update satisfies the ecs.System interface. The HUD redraws from Sync, not
// from the frame clock.
func (hud *HUDSystem) Update(dt float32) {}

// Sync rebuilds the HUD text from the snapshot.
func (hud *HUDSystem) Sync(snap *engine.FrameSnapshot) {
	if hud.font == nil {
		return
	}

	hostiles := 0
	var player *engine.ShipView
	for i := range snap.Ships {
		if snap.Ships[i].IsPlayer {
			player = &snap.Ships[i]
		}
		if snap.Ships[i].Faction == entity.Mandate {
			hostiles++
		}
	}

	hud.setText(hud.status, fmt.Sprintf("Score %d   Wave %d/%d   Hostiles %d",
		snap.Score, snap.Wave, snap.TotalWaves, hostiles))

	if player != nil {
		var line strings.Builder
		fmt.Fprintf(&line, "Hull %s", textGauge(player.HullFraction, 10))
		for i, heat := range player.Heat {
			marker := " "
			if i == player.Selected {
				marker = "*"
			}
			fmt.Fprintf(&line, "   %s%s %s", marker, heat.Label, textGauge(heat.Fraction, 6))
			if heat.Overheated {
				line.WriteString("!")
			}
		}
		hud.setText(hud.ship, line.String())

		pdText := fmt.Sprintf("PD %d/%d", player.PDAmmo, player.PDAmmoMax)
		if player.PDReloading {
			pdText = "PD RELOADING"
		}
		hud.setText(hud.pd, pdText)
	}

	banner := snap.StatusText
	if banner == "" {
		banner = " "
	}
	hud.setText(hud.banner, banner)
}

func (hud *HUDSystem) setText(label *hudLabel, text string) {
	if text == "" {
		text = " "
	}
	label.render.Drawable = common.Text{Font: hud.font, Text: text}
}

// textGauge renders a fraction as a fixed-width bar.
func textGauge(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteByte('#')
		} else {
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	return b.String()
}
