// Package core provides fundamental types and utilities shared by the game
// and the terminal platform. It has no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an axis-aligned block of terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Span is a closed interval [Min, Max] on one world axis.
type Span struct {
	Min, Max float64
}

// SpanAround returns the span of the given half-width centred on c.
func SpanAround(c, half float64) Span {
	return Span{Min: c - half, Max: c + half}
}

// Overlaps reports whether the two spans share interior points.
// Spans that only touch at an edge do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Max > o.Min && s.Min < o.Max
}

// StrictlyInside reports whether s lies within o without touching either edge.
func (s Span) StrictlyInside(o Span) bool {
	return s.Min > o.Min && s.Max < o.Max
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
