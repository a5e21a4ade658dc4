package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
)

// ToneGenerator is a decaying sine sweep with optional noise, enough for
// every effect the game plays.
type ToneGenerator struct {
	sr        beep.SampleRate
	pos       int
	startFreq float64 // Hz at t=0
	endFreq   float64 // Hz at the end of the sweep
	sweep     float64 // seconds the sweep takes
	decay     float64 // envelope rate, 1/s
	noise     float64 // share of white noise in the mix
	gain      float64
	rng       *rand.Rand
}

// Stream implements beep.Streamer. It never ends on its own; callers cap it
// with beep.Take.
func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := g.endFreq
		if g.sweep > 0 && t < g.sweep {
			freq = g.startFreq + (g.endFreq-g.startFreq)*t/g.sweep
		}
		envelope := math.Exp(-t * g.decay)
		tone := math.Sin(2 * math.Pi * freq * t)
		n := 0.0
		if g.noise > 0 {
			n = g.rng.Float64()*2 - 1
		}

		sample := g.gain * envelope * ((1-g.noise)*tone + g.noise*n)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

func newTone(sr beep.SampleRate, start, end, sweep, decay, noise, gain float64) *ToneGenerator {
	return &ToneGenerator{
		sr:        sr,
		startFreq: start,
		endFreq:   end,
		sweep:     sweep,
		decay:     decay,
		noise:     noise,
		gain:      gain,
		rng:       rand.New(rand.NewSource(int64(start*1000 + end))), // #nosec G404 -- audio only
	}
}

// NewGunshotGenerator is a sharp crack with a fast tail.
func NewGunshotGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 900, 120, 0.05, 25, 0.7, 0.5)
}

// NewShotgunGenerator is a wider, noisier blast.
func NewShotgunGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 400, 60, 0.12, 12, 0.85, 0.6)
}

// NewExplosionGenerator is a long low rumble.
func NewExplosionGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 120, 30, 0.6, 4, 0.6, 0.7)
}

// NewHitGenerator is a dull thud.
func NewHitGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 220, 90, 0.05, 30, 0.2, 0.4)
}

// NewSquealGenerator is a rising squeal.
func NewSquealGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 700, 1400, 0.25, 6, 0.1, 0.25)
}

// NewHurtGenerator is a short low grunt.
func NewHurtGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 180, 110, 0.1, 15, 0.3, 0.4)
}

// NewChimeGenerator is the bright arpeggio played with a one-liner.
func NewChimeGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 523, 1047, 0.3, 3, 0, 0.3)
}

// NewClickGenerator is the dry click of an empty chamber or a reload.
func NewClickGenerator(sr beep.SampleRate) *ToneGenerator {
	return newTone(sr, 2000, 1500, 0.01, 80, 0.5, 0.3)
}
