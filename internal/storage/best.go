package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clappy-bee/internal/games/bee"
)

// BestKey is the fixed identifier the best score is stored under.
const BestKey = "score"

// BestBackend is a key/value store for best scores with change
// notification. Store and GDataStore implement it.
type BestBackend interface {
	LoadBest(key string) (int, error)
	SaveBest(key string, score int) (int, error)
	ResetBest(key string) error
	Watch(key string, fn func(best int)) (cancel func())
}

// BestScore adapts a BestBackend to the simulation's score store. Backend
// failures are logged and otherwise swallowed: a broken disk must not
// stop the game.
type BestScore struct {
	backend BestBackend
	key     string
	logger  *log.Logger
}

var (
	_ bee.ScoreStore  = (*BestScore)(nil)
	_ bee.BestWatcher = (*BestScore)(nil)
	_ BestBackend     = (*Store)(nil)
	_ BestBackend     = (*GDataStore)(nil)
)

// NewBestScore wraps backend. A nil logger uses the default logger.
func NewBestScore(backend BestBackend, logger *log.Logger) *BestScore {
	if logger == nil {
		logger = log.Default()
	}
	return &BestScore{backend: backend, key: BestKey, logger: logger}
}

// Best returns the stored best, 0 when it cannot be read.
func (b *BestScore) Best() int {
	best, err := b.backend.LoadBest(b.key)
	if err != nil {
		b.logger.Warn("Cannot load best score", "key", b.key, "err", err)
		return 0
	}
	return best
}

// SetBest records score if it beats the stored best.
func (b *BestScore) SetBest(score int) {
	stored, err := b.backend.SaveBest(b.key, score)
	if err != nil {
		b.logger.Error("Cannot save best score", "key", b.key, "score", score, "err", err)
		return
	}
	b.logger.Debug("Best score saved", "key", b.key, "stored", stored)
}

// Reset clears the stored best.
func (b *BestScore) Reset() error {
	return b.backend.ResetBest(b.key)
}

// OnBestChange subscribes fn to changes of the stored best.
func (b *BestScore) OnBestChange(fn func(best int)) (cancel func()) {
	return b.backend.Watch(b.key, fn)
}
