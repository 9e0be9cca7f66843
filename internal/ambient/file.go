package ambient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileSource reads the signal from an appearance file and watches it for
// changes. The file holds a single word understood by ParseSignal. When the
// file is missing or unreadable the fallback Source answers instead.
type FileSource struct {
	path     string
	fallback Source
	logger   *zap.Logger
}

// NewFileSource builds a FileSource for path.
func NewFileSource(path string, fallback Source, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{
		path:     filepath.Clean(path),
		fallback: fallback,
		logger:   logger,
	}
}

// Path returns the watched file.
func (s *FileSource) Path() string {
	return s.path
}

// Current implements Source.
func (s *FileSource) Current() (bool, bool) {
	if dark, ok := s.read(); ok {
		return dark, true
	}
	if s.fallback != nil {
		return s.fallback.Current()
	}
	return false, false
}

func (s *FileSource) read() (bool, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("read appearance file", zap.String("path", s.path), zap.Error(err))
		}
		return false, false
	}
	return ParseSignal(string(data))
}

// Subscribe watches the file's directory, so editors that replace the file
// by rename are still observed. fn runs on the watcher goroutine and only
// when the resolved signal actually changes.
func (s *FileSource) Subscribe(fn func(dark bool)) (Subscription, error) {
	if fn == nil {
		return nil, fmt.Errorf("subscribe: nil handler")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create appearance dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	sub := &fileSubscription{
		watcher: watcher,
		done:    make(chan struct{}),
	}
	last, _ := s.Current()
	go s.run(sub, last, fn)
	return sub, nil
}

func (s *FileSource) run(sub *fileSubscription, last bool, fn func(bool)) {
	defer close(sub.done)
	for {
		select {
		case event, ok := <-sub.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			var dark bool
			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				dark, _ = s.Current()
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				// A truncating write shows up as an empty file first.
				var ok bool
				if dark, ok = s.read(); !ok {
					continue
				}
			default:
				continue
			}
			if dark == last {
				continue
			}
			last = dark
			s.logger.Debug("ambient signal changed", zap.Bool("dark", dark))
			fn(dark)
		case err, ok := <-sub.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("appearance watcher error", zap.Error(err))
		}
	}
}

type fileSubscription struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
	err     error
}

// Close stops the watcher and waits for its goroutine to exit.
func (f *fileSubscription) Close() error {
	f.once.Do(func() {
		f.err = f.watcher.Close()
		<-f.done
	})
	return f.err
}
