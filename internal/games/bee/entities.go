package bee

import "github.com/vovakirdan/clappy-bee/internal/core"

// Status is the lifecycle state of a simulation.
type Status int

const (
	StatusIdle    Status = iota // awaiting first start
	StatusStarted               // advancing every tick
	StatusOver                  // terminal until restart
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusStarted:
		return "started"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Bee is the player avatar: a circle centred on (X, Y).
type Bee struct {
	X, Y   float64
	Radius float64
}

// HSpan returns the horizontal extent of the bee.
func (b Bee) HSpan() core.Span {
	return core.SpanAround(b.X, b.Radius)
}

// VSpan returns the vertical extent of the bee.
func (b Bee) VSpan() core.Span {
	return core.SpanAround(b.Y, b.Radius)
}

// PipePair is one obstacle: a top and bottom pipe around a vertical gap.
// X is the horizontal centre of the pipes, Y the centre of the gap.
type PipePair struct {
	X            float64
	Y            float64
	TopHeight    float64
	BottomHeight float64
	Scored       bool
}

// HSpan returns the horizontal extent of the pipes.
func (p PipePair) HSpan(pipeWidth float64) core.Span {
	return core.SpanAround(p.X, pipeWidth/2)
}

// Gap returns the vertical extent of the opening.
func (p PipePair) Gap(gapSize float64) core.Span {
	return core.SpanAround(p.Y, gapSize/2)
}

// TrailingEdge returns the x-coordinate of the right side of the pipes.
func (p PipePair) TrailingEdge(pipeWidth float64) float64 {
	return p.X + pipeWidth/2
}

// Collides reports whether the bee hits the pipe pair. The bee must overlap
// the pipes horizontally (edge contact does not count) and is safe only when
// it sits strictly inside the gap (edge contact counts as a hit).
func Collides(b Bee, p PipePair, pipeWidth, gapSize float64) bool {
	if !b.HSpan().Overlaps(p.HSpan(pipeWidth)) {
		return false
	}
	return !b.VSpan().StrictlyInside(p.Gap(gapSize))
}
