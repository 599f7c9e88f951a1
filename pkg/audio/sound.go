// pkg/audio/sound.go

// Package audio synthesizes combat sound effects from game events. All
// sounds are generated streamers mixed into one beep speaker; no sample
// assets are shipped.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-outpost/pkg/entity"
	"github.com/opd-ai/go-outpost/pkg/event"
)

const sampleRate = beep.SampleRate(48000)

// Manager owns the speaker and mixes event-triggered effects. Handlers run
// on the simulation goroutine; the mixer hands samples to the speaker on its
// own goroutine, so all mixer access goes through the lock.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a sound manager. Call Initialize before Attach.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences all effects. The speaker itself stays open; beep has no
// close.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}

// Attach subscribes the manager's effect handlers to the game's event bus.
func (m *Manager) Attach(bus *event.Bus) {
	bus.Subscribe(event.WeaponFired, func(e event.Event) {
		we, ok := e.(*event.WeaponEvent)
		if !ok {
			return
		}
		switch we.Weapon {
		case entity.Laser.String():
			m.play(beep.Take(sampleRate.N(time.Millisecond*60), NewZapGenerator(sampleRate, 1400, 500)))
		case entity.Railgun.String():
			m.play(beep.Take(sampleRate.N(time.Millisecond*180), NewThumpGenerator(sampleRate)))
		case entity.MissileLauncher.String():
			m.play(beep.Take(sampleRate.N(time.Millisecond*350), NewZapGenerator(sampleRate, 220, 520)))
		}
	})

	bus.Subscribe(event.FireDenied, func(event.Event) {
		m.play(beep.Take(sampleRate.N(time.Millisecond*140), NewBuzzGenerator(sampleRate, 110)))
	})

	bus.Subscribe(event.ShipDestroyed, func(event.Event) {
		m.play(beep.Take(sampleRate.N(time.Millisecond*450), NewNoiseBurstGenerator(sampleRate)))
	})

	bus.Subscribe(event.PointDefenseBurst, func(event.Event) {
		m.play(beep.Take(sampleRate.N(time.Millisecond*80), NewZapGenerator(sampleRate, 2000, 1500)))
	})

	bus.Subscribe(event.OrdnanceIntercept, func(event.Event) {
		m.play(beep.Take(sampleRate.N(time.Millisecond*120), NewNoiseBurstGenerator(sampleRate)))
	})

	bus.Subscribe(event.GameEnded, func(event.Event) {
		m.play(beep.Take(sampleRate.N(time.Millisecond*700), NewChordGenerator(sampleRate, 220, 277, 330)))
	})
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Add(s)
}

// ZapGenerator sweeps a sine from startFreq to endFreq over its lifetime
// with a fast exponential decay. Truncate with beep.Take.
type ZapGenerator struct {
	sr        beep.SampleRate
	startFreq float64
	endFreq   float64
	pos       int
	phase     float64
}

// NewZapGenerator creates a frequency-sweep generator.
func NewZapGenerator(sr beep.SampleRate, startFreq, endFreq float64) *ZapGenerator {
	return &ZapGenerator{sr: sr, startFreq: startFreq, endFreq: endFreq}
}

func (g *ZapGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sweep := math.Min(t/0.15, 1.0)
		freq := g.startFreq + (g.endFreq-g.startFreq)*sweep

		g.phase += freq / float64(g.sr)
		if g.phase >= 1.0 {
			g.phase -= 1.0
		}

		envelope := math.Exp(-t * 18)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ZapGenerator) Err() error {
	return nil
}

// ThumpGenerator generates a low kick with a downward pitch bend, used for
// the railgun discharge.
type ThumpGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewThumpGenerator creates a thump generator.
func NewThumpGenerator(sr beep.SampleRate) *ThumpGenerator {
	return &ThumpGenerator{sr: sr}
}

func (g *ThumpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 12)
		freq := 50 * (1 + 3*envelope)
		sample := 0.4 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThumpGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a harsh low buzz for denied fire commands.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz generator at the given frequency.
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		attack := math.Min(t/0.02, 1.0)
		sample *= attack * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// NoiseBurstGenerator generates filtered noise with an exponential decay,
// used for explosions and intercept pops.
type NoiseBurstGenerator struct {
	sr    beep.SampleRate
	pos   int
	state uint64
	last  float64
}

// NewNoiseBurstGenerator creates a noise burst generator.
func NewNoiseBurstGenerator(sr beep.SampleRate) *NoiseBurstGenerator {
	return &NoiseBurstGenerator{sr: sr, state: 0x853c49e6748fea9b}
}

func (g *NoiseBurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// xorshift noise source, low-passed for rumble
		g.state ^= g.state << 13
		g.state ^= g.state >> 7
		g.state ^= g.state << 17
		noise := float64(int64(g.state)) / float64(math.MaxInt64)
		g.last = g.last*0.92 + noise*0.08

		envelope := math.Exp(-t * 7)
		sample := 0.6 * envelope * g.last

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurstGenerator) Err() error {
	return nil
}

// ChordGenerator sums sine tones at the given frequencies with a slow decay,
// used for the end-of-match sting.
type ChordGenerator struct {
	sr    beep.SampleRate
	freqs []float64
	pos   int
}

// NewChordGenerator creates a chord generator.
func NewChordGenerator(sr beep.SampleRate, freqs ...float64) *ChordGenerator {
	return &ChordGenerator{sr: sr, freqs: freqs}
}

func (g *ChordGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 3)

		sample := 0.0
		for _, f := range g.freqs {
			sample += math.Sin(2 * math.Pi * f * t)
		}
		sample *= 0.15 * envelope / float64(len(g.freqs))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChordGenerator) Err() error {
	return nil
}
