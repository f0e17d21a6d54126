// Package audio synthesizes Clappy Bee's sound effects with beep. Nothing
// is loaded from disk: every sound is generated from oscillators.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every effect is generated at.
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency glides linearly from
// startFreq to endFreq over its duration.
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
}

// NewOscillator creates a constant-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: from,
		endFreq:   to,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades s in over attack and out over the final release of
// duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so 0 means silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// shaped is an enveloped oscillator at the given gain.
func shaped(osc beep.Streamer, d, attack, release time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return newVolume(NewEnvelope(osc, d, attack, release, rate), gain)
}

// JumpChirp is the short upward chirp of a flap.
func JumpChirp(rate beep.SampleRate) beep.Streamer {
	d := 90 * time.Millisecond
	return shaped(NewSweep(520, 980, d, WaveSine, rate), d, 5*time.Millisecond, 40*time.Millisecond, 0.5, rate)
}

// FallingWhistle is a descending whistle played while the bee plunges.
func FallingWhistle(rate beep.SampleRate) beep.Streamer {
	d := 700 * time.Millisecond
	return shaped(NewSweep(1400, 380, d, WaveSine, rate), d, 20*time.Millisecond, 200*time.Millisecond, 0.3, rate)
}

// ScoreDing is two quick rising square notes.
func ScoreDing(rate beep.SampleRate) beep.Streamer {
	n1 := 70 * time.Millisecond
	n2 := 140 * time.Millisecond
	return beep.Seq(
		shaped(NewOscillator(987.77, n1, WaveSquare, rate), n1, 2*time.Millisecond, 20*time.Millisecond, 0.15, rate),
		shaped(NewOscillator(1318.51, n2, WaveSquare, rate), n2, 2*time.Millisecond, 100*time.Millisecond, 0.15, rate),
	)
}

// GameOverTone is a falling three-note phrase over a noise burst.
func GameOverTone(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64, d time.Duration) beep.Streamer {
		return shaped(NewOscillator(freq, d, WaveSaw, rate), d, 5*time.Millisecond, d/2, 0.25, rate)
	}
	phrase := beep.Seq(
		note(440, 160*time.Millisecond),
		note(330, 160*time.Millisecond),
		note(220, 420*time.Millisecond),
	)
	thud := 250 * time.Millisecond
	return beep.Mix(phrase, shaped(NewOscillator(0, thud, WaveNoise, rate), thud, 0, 200*time.Millisecond, 0.2, rate))
}

// BuzzGenerator is the endless wing buzz, a low tone with harmonics and
// a slow wobble.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// Fade in, then a 6 Hz wing-beat wobble
		fade := math.Min(t/0.05, 1.0)
		wobble := 0.75 + 0.25*math.Sin(2*math.Pi*6*t)
		sample *= fade * wobble * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error { return nil }
