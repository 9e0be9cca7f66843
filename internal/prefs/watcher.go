package prefs

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kisanportal/kisan/internal/ambient"
)

// watcher holds the single ambient subscription of a Store. start only ever
// subscribes once; a stopped watcher is not restarted.
type watcher struct {
	mu       sync.Mutex
	source   ambient.Source
	onChange func(dark bool)
	logger   *zap.Logger
	started  bool
	sub      ambient.Subscription
}

func (w *watcher) start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	w.started = true
	if w.source == nil {
		return
	}
	sub, err := w.source.Subscribe(w.onChange)
	if err != nil {
		w.logger.Warn("ambient signal unavailable, following initial value only", zap.Error(err))
		return
	}
	w.sub = sub
}

func (w *watcher) stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sub == nil {
		return nil
	}
	err := w.sub.Close()
	w.sub = nil
	return err
}
