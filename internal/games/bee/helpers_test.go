package bee

import "sync"

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// recorder collects emitted events in order.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(e Event) int {
	n := 0
	for _, got := range r.events {
		if got == e {
			n++
		}
	}
	return n
}

// fakeStore is an in-memory ScoreStore that also supports watchers.
type fakeStore struct {
	mu       sync.Mutex
	best     int
	writes   int
	next     int
	watchers map[int]func(int)
}

func (f *fakeStore) Best() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.best
}

func (f *fakeStore) SetBest(score int) {
	f.mu.Lock()
	f.best = score
	f.writes++
	f.mu.Unlock()
}

func (f *fakeStore) OnBestChange(fn func(int)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchers == nil {
		f.watchers = make(map[int]func(int))
	}
	id := f.next
	f.next++
	f.watchers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.watchers, id)
	}
}

// publish simulates a write made by another process or session.
func (f *fakeStore) publish(best int) {
	f.mu.Lock()
	f.best = best
	fns := make([]func(int), 0, len(f.watchers))
	for _, fn := range f.watchers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(best)
	}
}

// newStarted returns a started portrait simulation of 1000x2000.
func newStarted(opts ...Option) *Simulation {
	s := NewSimulation(append([]Option{WithRand(fixedRand(0.5))}, opts...)...)
	s.Resize(1000, 2000)
	s.Start()
	return s
}
