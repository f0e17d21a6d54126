package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/clappy-bee/internal/games/bee"
)

// SoundManager plays the game's sound effects. It listens to simulation
// events; until Initialize succeeds every event is ignored, so the game
// runs the same without an audio device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	ambience    *beep.Ctrl
	falling     *beep.Ctrl
	initialized bool
}

var _ bee.Listener = (*SoundManager)(nil)

// NewSoundManager creates a sound manager with master volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(newVolume(sm.mixer, sm.volume))
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.ambience, sm.falling = nil, nil

	speaker.Close()
	sm.initialized = false
}

// OnEvent maps simulation events to sounds.
func (sm *SoundManager) OnEvent(e bee.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	switch e {
	case bee.EventStart:
		sm.stop(&sm.falling)
		sm.startAmbience()
	case bee.EventJump:
		sm.stop(&sm.falling)
		sm.mixer.Add(JumpChirp(SampleRate))
	case bee.EventFalling:
		sm.stop(&sm.falling)
		sm.falling = &beep.Ctrl{Streamer: FallingWhistle(SampleRate)}
		sm.mixer.Add(sm.falling)
	case bee.EventScore:
		sm.mixer.Add(ScoreDing(SampleRate))
	case bee.EventGameOver:
		sm.stop(&sm.falling)
		sm.stop(&sm.ambience)
		sm.mixer.Add(GameOverTone(SampleRate))
	}
}

// startAmbience starts the looping wing buzz unless it is already playing.
func (sm *SoundManager) startAmbience() {
	if sm.ambience != nil && !sm.ambience.Paused {
		return
	}
	sm.ambience = &beep.Ctrl{Streamer: NewBuzzGenerator(SampleRate, 180)}
	sm.mixer.Add(sm.ambience)
}

// stop silences a controlled stream. The mixer drops it on its next pass.
func (sm *SoundManager) stop(ctrl **beep.Ctrl) {
	if *ctrl == nil {
		return
	}
	(*ctrl).Paused = true
	(*ctrl).Streamer = nil
	*ctrl = nil
}
