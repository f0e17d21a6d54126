package bee

import (
	"sync/atomic"

	"github.com/vovakirdan/clappy-bee/internal/core"
)

// Simulation is the Clappy Bee state engine. It is driven by an external
// frame pump (Tick), player input (Jump) and layout changes (Resize), and
// never blocks or fails.
//
// A Simulation is owned by one goroutine. Only the best score may be
// updated from elsewhere, through a BestWatcher store.
type Simulation struct {
	params Params
	rng    RandomSource
	store  ScoreStore

	listeners []Listener
	unwatch   func()

	width, height float64
	sized         bool

	status   Status
	bee      Bee
	velocity float64
	falling  bool
	pipes    []PipePair
	score    int
	best     atomic.Int64
	ticks    int
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithParams overrides the default tuning.
func WithParams(p Params) Option {
	return func(s *Simulation) { s.params = p }
}

// WithRand injects the random source used to place gaps.
func WithRand(r RandomSource) Option {
	return func(s *Simulation) { s.rng = r }
}

// WithScoreStore sets the best-score collaborator. Without one the best
// score lives only in memory.
func WithScoreStore(store ScoreStore) Option {
	return func(s *Simulation) { s.store = store }
}

// WithListener registers an event listener.
func WithListener(l Listener) Option {
	return func(s *Simulation) { s.listeners = append(s.listeners, l) }
}

// NewSimulation creates an idle simulation. Call Resize before starting.
func NewSimulation(opts ...Option) *Simulation {
	s := &Simulation{
		params: DefaultParams(),
		status: StatusIdle,
		pipes:  make([]PipePair, 0, 8),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandomSource(0)
	}
	if s.store == nil {
		s.store = &memoryStore{}
	}
	s.bee.Radius = s.params.BeeRadius

	s.best.Store(int64(s.store.Best()))
	if w, ok := s.store.(BestWatcher); ok {
		s.unwatch = w.OnBestChange(func(best int) {
			s.best.Store(int64(best))
		})
	}
	return s
}

// Close detaches the simulation from its score store.
func (s *Simulation) Close() {
	if s.unwatch != nil {
		s.unwatch()
		s.unwatch = nil
	}
}

// Resize updates the viewport. The bee is placed only on the first call;
// later calls leave it where it is.
func (s *Simulation) Resize(width, height float64) {
	s.width = width
	s.height = height
	if s.sized {
		return
	}
	s.sized = true
	s.bee = Bee{
		X:      width * s.params.BeeXFraction,
		Y:      height / 2,
		Radius: s.params.BeeRadius,
	}
}

// Start begins a run from IDLE. From OVER it restarts; while STARTED it
// does nothing.
func (s *Simulation) Start() {
	switch s.status {
	case StatusIdle:
		s.status = StatusStarted
		s.emit(EventStart)
	case StatusOver:
		s.Restart()
	}
}

// Stop ends the run and persists the score if it beats the best.
func (s *Simulation) Stop() {
	if s.status != StatusStarted {
		return
	}
	s.status = StatusOver
	s.saveScore()
	s.emit(EventGameOver)
}

// Restart resets the bee, clears the pipes and the score, and starts a new run.
func (s *Simulation) Restart() {
	s.bee.Y = s.height / 2
	s.velocity = 0
	s.falling = false
	s.pipes = s.pipes[:0]
	s.score = 0
	s.ticks = 0
	s.status = StatusStarted
	s.emit(EventStart)
}

// Jump sets the bee's vertical velocity to the jump impulse, whatever it
// was before. Ignored unless the run is in progress.
func (s *Simulation) Jump() {
	if s.status != StatusStarted {
		return
	}
	s.velocity = s.params.JumpImpulse
	s.falling = false
	s.emit(EventJump)
}

// SetPipeVelocity changes how far pipes scroll per tick.
func (s *Simulation) SetPipeVelocity(v float64) {
	s.params.PipeVelocity = v
}

// Tick advances the simulation by one frame.
func (s *Simulation) Tick() {
	if s.status != StatusStarted {
		return
	}
	s.ticks++

	for i := range s.pipes {
		p := &s.pipes[i]
		if Collides(s.bee, *p, s.params.PipeWidth, s.params.GapSize) {
			s.Stop()
			return
		}
		if !p.Scored && s.bee.X > p.TrailingEdge(s.params.PipeWidth) {
			p.Scored = true
			s.score++
			s.emit(EventScore)
		}
	}

	// The ceiling stops the bee, the ground ends the run.
	if s.bee.Y < 0 {
		s.velocity = 0
		s.bee.Y = 0
		return
	}
	if s.bee.Y > s.height {
		s.Stop()
		return
	}

	s.velocity = core.ClampF(s.velocity+s.params.Gravity, -s.params.MaxVelocity, s.params.MaxVelocity)
	s.bee.Y += s.velocity
	if !s.falling && s.velocity > s.params.fallingThreshold() {
		s.falling = true
		s.emit(EventFalling)
	}

	s.advancePipes()
	s.spawnPipes()
}

// advancePipes scrolls every pipe left and drops those fully off-screen.
func (s *Simulation) advancePipes() {
	kept := s.pipes[:0]
	for _, p := range s.pipes {
		p.X -= s.params.PipeVelocity
		if p.X+s.params.PipeWidth >= 0 {
			kept = append(kept, p)
		}
	}
	s.pipes = kept
}

// spawnThreshold is the x the newest pipe must pass before the next one
// appears. Landscape viewports spawn denser.
func (s *Simulation) spawnThreshold() float64 {
	if s.width > s.height {
		return s.width / s.params.LandscapeSpawnDivisor
	}
	return s.width / s.params.PortraitSpawnDivisor
}

func (s *Simulation) spawnPipes() {
	if n := len(s.pipes); n > 0 && s.pipes[n-1].X >= s.spawnThreshold() {
		return
	}
	gap := s.params.GapSize
	top := s.rng.Float64() * (s.height / 2)
	s.pipes = append(s.pipes, PipePair{
		X:            s.width + s.params.PipeWidth,
		Y:            top + gap/2,
		TopHeight:    top,
		BottomHeight: s.height - top - gap,
	})
}

func (s *Simulation) saveScore() {
	if s.score > int(s.best.Load()) {
		s.best.Store(int64(s.score))
		s.store.SetBest(s.score)
	}
}

func (s *Simulation) emit(e Event) {
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}

// Status returns the lifecycle state.
func (s *Simulation) Status() Status { return s.status }

// Bee returns a copy of the bee.
func (s *Simulation) Bee() Bee { return s.bee }

// Velocity returns the bee's vertical velocity (positive = down).
func (s *Simulation) Velocity() float64 { return s.velocity }

// Score returns the current run's score.
func (s *Simulation) Score() int { return s.score }

// Best returns the best score known to the simulation.
func (s *Simulation) Best() int { return int(s.best.Load()) }

// Ticks returns the number of ticks advanced in the current run.
func (s *Simulation) Ticks() int { return s.ticks }

// Size returns the viewport dimensions.
func (s *Simulation) Size() (width, height float64) { return s.width, s.height }

// Params returns the active tuning.
func (s *Simulation) Params() Params { return s.params }

// Pipes returns a copy of the obstacle list, oldest first.
func (s *Simulation) Pipes() []PipePair {
	out := make([]PipePair, len(s.pipes))
	copy(out, s.pipes)
	return out
}
