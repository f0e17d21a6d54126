package bee

import (
	"math/rand"
	"time"
)

// Event is a semantic moment in the game that collaborators such as the
// audio sink react to.
type Event int

const (
	EventStart    Event = iota // a run began; ambient loop should play
	EventJump                  // the bee flapped
	EventFalling               // the bee started plunging at near terminal velocity
	EventScore                 // a pipe pair was passed
	EventGameOver              // the run ended
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventJump:
		return "jump"
	case EventFalling:
		return "falling"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Listener receives simulation events. Calls are synchronous and happen on
// the goroutine driving the simulation; implementations must not block.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// ScoreStore persists the best score. Failures are the store's business;
// the simulation never sees them.
type ScoreStore interface {
	Best() int
	SetBest(score int)
}

// BestWatcher is implemented by stores that can report changes of the
// stored best made elsewhere. The callback may run on any goroutine.
type BestWatcher interface {
	OnBestChange(fn func(best int)) (cancel func())
}

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a math/rand generator. A zero seed picks one
// from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// memoryStore keeps the best score for the lifetime of the process.
type memoryStore struct {
	best int
}

func (m *memoryStore) Best() int         { return m.best }
func (m *memoryStore) SetBest(score int) { m.best = score }
