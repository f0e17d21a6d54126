package storage

import "sync"

// watchers fans best-score changes out to subscribers, per key.
type watchers struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(int)
}

func (w *watchers) add(key string, fn func(int)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subs == nil {
		w.subs = make(map[string]map[int]func(int))
	}
	if w.subs[key] == nil {
		w.subs[key] = make(map[int]func(int))
	}
	id := w.next
	w.next++
	w.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.subs[key], id)
		})
	}
}

// notify calls every subscriber of key outside the lock, so callbacks may
// re-enter the store.
func (w *watchers) notify(key string, value int) {
	w.mu.Lock()
	fns := make([]func(int), 0, len(w.subs[key]))
	for _, fn := range w.subs[key] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}
