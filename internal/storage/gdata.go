package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// bestObject is the gdata object holding one property per best-score key.
const bestObject = "best"

// bestRecord is the YAML document stored in each property.
type bestRecord struct {
	Value     int       `yaml:"value"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// GDataStore keeps best scores in the platform's per-user data directory
// through gdata. It holds no score history.
type GDataStore struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	watchers watchers
}

// OpenGData opens (or creates) the gdata storage for appName.
func OpenGData(appName string) (*GDataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %q: %w", appName, err)
	}
	return &GDataStore{manager: manager}, nil
}

// LoadBest returns the best score stored under key, 0 if there is none.
func (g *GDataStore) LoadBest(key string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(key)
}

func (g *GDataStore) load(key string) (int, error) {
	if !g.manager.ObjectPropExists(bestObject, key) {
		return 0, nil
	}
	data, err := g.manager.LoadObjectProp(bestObject, key)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best %q: %w", key, err)
	}
	var rec bestRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("storage: corrupt best %q: %w", key, err)
	}
	return rec.Value, nil
}

func (g *GDataStore) save(key string, value int) error {
	data, err := yaml.Marshal(bestRecord{Value: value, UpdatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("storage: cannot encode best %q: %w", key, err)
	}
	if err := g.manager.SaveObjectProp(bestObject, key, data); err != nil {
		return fmt.Errorf("storage: cannot save best %q: %w", key, err)
	}
	return nil
}

// SaveBest raises the best score under key to score. A lower score leaves
// the stored value unchanged. It returns the value stored afterwards.
func (g *GDataStore) SaveBest(key string, score int) (int, error) {
	g.mu.Lock()
	current, err := g.load(key)
	if err != nil {
		// Unreadable values are overwritten rather than blocking every save.
		current = 0
	}
	if score <= current && err == nil {
		g.mu.Unlock()
		return current, nil
	}
	if err := g.save(key, score); err != nil {
		g.mu.Unlock()
		return 0, err
	}
	g.mu.Unlock()

	g.watchers.notify(key, score)
	return score, nil
}

// ResetBest sets the best score under key back to zero.
func (g *GDataStore) ResetBest(key string) error {
	g.mu.Lock()
	err := g.save(key, 0)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.watchers.notify(key, 0)
	return nil
}

// Watch registers fn to be called with the new best under key after every
// change made through this store.
func (g *GDataStore) Watch(key string, fn func(best int)) (cancel func()) {
	return g.watchers.add(key, fn)
}
