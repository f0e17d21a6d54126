package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer, limit int) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return nil
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	samples := drain(t, osc, rate.N(time.Second))
	if len(samples) != rate.N(100*time.Millisecond) {
		t.Errorf("got %d samples, expected %d", len(samples), rate.N(100*time.Millisecond))
	}
	if n, ok := osc.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Errorf("drained oscillator returned (%d, %v), expected (0, false)", n, ok)
	}
}

func TestOscillatorWaveforms(t *testing.T) {
	rate := beep.SampleRate(44100)

	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			samples := drain(t, NewOscillator(220, 50*time.Millisecond, tc.wave, rate), rate.N(time.Second))
			peak := 0.0
			for _, v := range samples {
				if v < -1 || v > 1 {
					t.Fatalf("sample %v out of range", v)
				}
				peak = math.Max(peak, math.Abs(v))
			}
			if peak < 0.5 {
				t.Errorf("peak %v, expected an audible wave", peak)
			}
		})
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := time.Second
	osc := NewOscillator(0, d, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, d, 100*time.Millisecond, 200*time.Millisecond, rate)

	samples := drain(t, env, 2000)
	if len(samples) != 1000 {
		t.Fatalf("got %d samples, expected 1000", len(samples))
	}

	checks := []struct {
		index    int
		expected float64
	}{
		{0, 0},
		{50, 0.5},
		{500, 1},
		{900, 0.5},
		{999, 0.005},
	}
	for _, c := range checks {
		if math.Abs(samples[c.index]-c.expected) > 1e-9 {
			t.Errorf("sample %d = %v, expected %v", c.index, samples[c.index], c.expected)
		}
	}
}

func TestSweepMovesFrequency(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(t, NewSweep(200, 2000, time.Second, WaveSine, rate), rate.N(2*time.Second))

	crossings := func(part []float64) int {
		n := 0
		for i := 1; i < len(part); i++ {
			if (part[i-1] < 0) != (part[i] < 0) {
				n++
			}
		}
		return n
	}
	tenth := len(samples) / 10
	low := crossings(samples[:tenth])
	high := crossings(samples[len(samples)-tenth:])
	if high <= low*3 {
		t.Errorf("expected the end of the sweep to oscillate much faster: %d vs %d crossings", high, low)
	}
}

func TestEffectsEnd(t *testing.T) {
	rate := SampleRate
	effects := map[string]beep.Streamer{
		"jump":      JumpChirp(rate),
		"falling":   FallingWhistle(rate),
		"score":     ScoreDing(rate),
		"game over": GameOverTone(rate),
	}
	for name, s := range effects {
		samples := drain(t, s, rate.N(5*time.Second))
		if len(samples) == 0 {
			t.Errorf("%s produced no samples", name)
		}
	}
}

func TestBuzzIsEndless(t *testing.T) {
	g := NewBuzzGenerator(SampleRate, 180)
	buf := make([][2]float64, 4096)
	for i := 0; i < 50; i++ {
		n, ok := g.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("buzz stopped after %d buffers", i)
		}
	}
}

func TestNewVolumeSilentAtZero(t *testing.T) {
	v := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, SampleRate), 0)
	if !v.Silent {
		t.Error("zero volume should be silent")
	}
	half := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, SampleRate), 0.5)
	if half.Silent || half.Volume != -1 {
		t.Errorf("half volume = %+v, expected log2(0.5) = -1", half)
	}
}
