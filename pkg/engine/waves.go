// pkg/engine/waves.go
package engine

import (
	"github.com/opd-ai/go-outpost/pkg/config"
	"github.com/opd-ai/go-outpost/pkg/event"
)

// waveSpawner feeds follow-up enemy waves into the match. A wave's countdown
// starts once the field is clear of Mandate ships; when it elapses the wave
// spawns on a ring around the arena center.
type waveSpawner struct {
	waves    []config.WaveConfig
	launched int
	counting bool
	delay    int
}

func newWaveSpawner(waves []config.WaveConfig) *waveSpawner {
	return &waveSpawner{waves: waves}
}

// exhausted reports whether every configured wave has spawned.
func (w *waveSpawner) exhausted() bool {
	return w.launched >= len(w.waves)
}

// tick advances the spawner by one simulation step.
func (w *waveSpawner) tick(g *Game) {
	if w.exhausted() {
		return
	}
	if g.hostileShipsRemain() {
		w.counting = false
		return
	}

	if !w.counting {
		w.counting = true
		w.delay = w.waves[w.launched].DelayTicks
	}

	if w.delay > 0 {
		w.delay--
		return
	}

	wave := w.waves[w.launched]
	w.launched++
	w.counting = false

	g.spawnEnemyRing(wave.Enemies, wave.Radius, wave.HullBonus)
	g.bus.Publish(event.NewWaveEvent(g, w.launched, wave.Enemies))
}
