// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/physics"
)

// Drawable sizes in render units per entity kind.
const (
	shipSize       = 24
	missileSize    = 8
	projectileSize = 5
	pdShotSize     = 3
)

var (
	concordColor  = color.RGBA{R: 0, G: 200, B: 255, A: 255}
	mandateColor  = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	ordnanceColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

// renderEntity pairs an ECS identity with the components the render system
// mutates in place.
type renderEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// WorldRenderer mirrors a frame snapshot into ECS render entities. One entity
// per live ship or round, created on first sight and removed once the ID
// disappears from the snapshot.
type WorldRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	entities map[entity.ID]*renderEntity
	seen     map[entity.ID]bool
}

// NewWorldRenderer creates a renderer bound to the world's render system.
func NewWorldRenderer(world *ecs.World) *WorldRenderer {
	r := &WorldRenderer{
		world:    world,
		entities: make(map[entity.ID]*renderEntity),
		seen:     make(map[entity.ID]bool),
	}
	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
		}
	}
	return r
}

// Sync reconciles the render entities with the snapshot.
func (r *WorldRenderer) Sync(snap *engine.FrameSnapshot) {
	clear(r.seen)

	for i := range snap.Ships {
		ship := &snap.Ships[i]
		re := r.getOrCreate(ship.ID, entity.KindShip, ship.Faction)
		r.place(re, ship.Position, ship.Heading, shipSize, snap.WorldSize)
		r.seen[ship.ID] = true
	}

	for i := range snap.Ordnance {
		ord := &snap.Ordnance[i]
		re := r.getOrCreate(ord.ID, ord.Kind, ord.Faction)
		r.place(re, ord.Position, ord.Heading, sizeOf(ord.Kind), snap.WorldSize)
		r.seen[ord.ID] = true
	}

	for id, re := range r.entities {
		if !r.seen[id] {
			r.renderSystem.Remove(re.basic)
			delete(r.entities, id)
		}
	}
}

// getOrCreate returns the render entity for id, creating and registering it
// on first sight.
func (r *WorldRenderer) getOrCreate(id entity.ID, kind entity.Kind, faction entity.Faction) *renderEntity {
	if re, ok := r.entities[id]; ok {
		return re
	}

	size := float32(sizeOf(kind))
	re := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: drawableOf(kind),
			Color:    colorOf(kind, faction),
		},
		space: common.SpaceComponent{
			Width:  size,
			Height: size,
		},
	}
	r.entities[id] = re
	r.renderSystem.Add(&re.basic, &re.render, &re.space)
	return re
}

// place positions a render entity from world coordinates. SpaceComponent
// positions are top-left, so the drawable is recentered on the entity.
func (r *WorldRenderer) place(re *renderEntity, pos physics.Vector2D, heading float64, size float64, worldSize float64) {
	x, y := worldToRender(pos, worldSize)
	half := float32(size / 2)
	re.space.Position.X = x - half
	re.space.Position.Y = y - half
	re.space.Rotation = float32(heading * 180 / math.Pi)
}

// worldToRender shifts origin-centered world coordinates into the positive
// quadrant engo renders.
func worldToRender(pos physics.Vector2D, worldSize float64) (float32, float32) {
	return float32(pos.X + worldSize/2), float32(pos.Y + worldSize/2)
}

func sizeOf(kind entity.Kind) float64 {
	switch kind {
	case entity.KindShip:
		return shipSize
	case entity.KindMissile:
		return missileSize
	case entity.KindPDShot:
		return pdShotSize
	default:
		return projectileSize
	}
}

func drawableOf(kind entity.Kind) common.Drawable {
	if kind == entity.KindShip {
		return common.Triangle{}
	}
	return common.Circle{}
}

func colorOf(kind entity.Kind, faction entity.Faction) color.Color {
	if kind != entity.KindShip {
		return ordnanceColor
	}
	if faction == entity.Concord {
		return concordColor
	}
	return mandateColor
}
