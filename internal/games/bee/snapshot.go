package bee

// Snapshot is an immutable copy of the simulation state, safe to hand to
// renderers and to compare in determinism tests.
type Snapshot struct {
	Tick     int
	Status   Status
	Bee      Bee
	Velocity float64
	Pipes    []PipePair
	Score    int
	Best     int
	Width    float64
	Height   float64
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:     s.ticks,
		Status:   s.status,
		Bee:      s.bee,
		Velocity: s.velocity,
		Pipes:    s.Pipes(),
		Score:    s.score,
		Best:     s.Best(),
		Width:    s.width,
		Height:   s.height,
	}
}
