package bee

import "testing"

func TestCollides(t *testing.T) {
	const (
		pipeWidth = 150.0
		gapSize   = 250.0
	)
	// Gap spans y in [175, 425]; pipe spans x in [25, 175].
	pipe := PipePair{X: 100, Y: 300}

	tests := []struct {
		name     string
		bee      Bee
		expected bool
	}{
		{"overlap above the gap", Bee{X: 100, Y: 100, Radius: 30}, true},
		{"overlap below the gap", Bee{X: 100, Y: 500, Radius: 30}, true},
		{"contained in the gap", Bee{X: 100, Y: 300, Radius: 30}, false},
		{"straddling the gap top", Bee{X: 100, Y: 180, Radius: 30}, true},
		// Vertical containment is strict: touching a gap edge is a hit.
		{"touching gap top", Bee{X: 100, Y: 205, Radius: 30}, true},
		{"touching gap bottom", Bee{X: 100, Y: 395, Radius: 30}, true},
		{"just inside gap top", Bee{X: 100, Y: 205.5, Radius: 30}, false},
		// Horizontal overlap is strict too: touching a pipe side is safe.
		{"touching left side", Bee{X: -5, Y: 100, Radius: 30}, false},
		{"touching right side", Bee{X: 205, Y: 100, Radius: 30}, false},
		{"grazing left side", Bee{X: -4.5, Y: 100, Radius: 30}, true},
		{"clear to the left", Bee{X: -100, Y: 100, Radius: 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(tc.bee, pipe, pipeWidth, gapSize); got != tc.expected {
				t.Errorf("Collides() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPipePairGeometry(t *testing.T) {
	p := PipePair{X: 1150, Y: 375, TopHeight: 250, BottomHeight: 1500}

	if got := p.TrailingEdge(150); got != 1225 {
		t.Errorf("TrailingEdge() = %v, expected 1225", got)
	}
	gap := p.Gap(250)
	if gap.Min != p.TopHeight || gap.Max != 500 {
		t.Errorf("Gap() = %+v, expected [250, 500]", gap)
	}
}

func TestStatusString(t *testing.T) {
	if StatusIdle.String() != "idle" || StatusStarted.String() != "started" || StatusOver.String() != "over" {
		t.Error("unexpected status names")
	}
	if EventGameOver.String() != "game_over" {
		t.Errorf("EventGameOver.String() = %q", EventGameOver.String())
	}
}
