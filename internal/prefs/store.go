package prefs

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kisanportal/kisan/internal/ambient"
)

// Presenter applies an effective scheme to the visual layer. Apply is called
// while the Store holds its lock, so it must not block or call back into the
// Store.
type Presenter interface {
	Apply(Scheme)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Scheme)

// Apply implements Presenter.
func (f PresenterFunc) Apply(s Scheme) { f(s) }

// State is a copy of the Store's current values.
type State struct {
	Mode      Mode
	System    Scheme
	Effective Scheme
	Language  language.Tag
	// Persistent is false once storage has failed and values live in memory only.
	Persistent bool
}

// Options configure a Store.
type Options struct {
	Storage   Storage
	Source    ambient.Source
	Presenter Presenter
	Logger    *zap.Logger
}

// Store owns the theme mode and language preferences for a session.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	presenter Presenter
	source    ambient.Source
	logger    *zap.Logger
	watcher   *watcher
	state     State
}

// NewStore builds a Store. A nil Storage keeps preferences in memory and a
// nil Source means no ambient signal (Light).
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	storage := opts.Storage
	persistent := true
	if storage == nil {
		storage = NewMemoryStorage()
		persistent = false
	}
	s := &Store{
		storage:   storage,
		presenter: opts.Presenter,
		source:    opts.Source,
		logger:    logger,
		state: State{
			Mode:       ModeSystem,
			System:     SchemeLight,
			Effective:  SchemeLight,
			Language:   DefaultLanguage,
			Persistent: persistent,
		},
	}
	s.watcher = &watcher{
		source:   opts.Source,
		onChange: s.onSystemSignal,
		logger:   logger,
	}
	return s
}

// Initialize subscribes to ambient changes, loads stored values, samples the
// ambient signal and applies the effective scheme. It may be called again to
// reload from storage; the subscription is only made once.
func (s *Store) Initialize() {
	// Subscribe before sampling so a change in between is not lost.
	s.watcher.start()

	s.mu.Lock()
	s.state.Mode = s.loadMode()
	s.state.Language = s.loadLanguage()
	s.state.System = SchemeLight
	if s.source != nil {
		if dark, ok := s.source.Current(); ok {
			s.state.System = schemeFor(dark)
		}
	}
	s.recompute()
	s.apply()
	s.mu.Unlock()
}

// Close releases the ambient subscription.
func (s *Store) Close() error {
	return s.watcher.stop()
}

// State returns a copy of the current preferences.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetMode changes, persists and applies the theme mode. Invalid modes are
// ignored and reported with ErrInvalidMode.
func (s *Store) SetMode(mode Mode) error {
	if !mode.Valid() {
		s.logger.Warn("ignoring invalid theme mode", zap.Int("mode", int(mode)))
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(mode)
	return nil
}

// SetModeString parses raw and calls SetMode.
func (s *Store) SetModeString(raw string) error {
	mode, err := ParseMode(raw)
	if err != nil {
		s.logger.Warn("ignoring invalid theme mode", zap.String("mode", raw))
		return err
	}
	return s.SetMode(mode)
}

// ToggleMode flips between Light and Dark. From System it switches to the
// opposite of what is currently shown.
func (s *Store) ToggleMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next Mode
	switch s.state.Mode {
	case ModeLight:
		next = ModeDark
	case ModeDark:
		next = ModeLight
	case ModeSystem:
		next = modeFor(s.state.Effective.Opposite())
	default:
		next = ModeSystem
	}
	s.setModeLocked(next)
	return next
}

func (s *Store) setModeLocked(mode Mode) {
	s.state.Mode = mode
	s.recompute()
	s.persist(ThemeKey, mode.String())
	s.apply()
}

// IsDark reports whether the effective scheme is Dark.
func (s *Store) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Effective == SchemeDark
}

// IsLight reports whether the effective scheme is Light.
func (s *Store) IsLight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Effective == SchemeLight
}

// IsSystemMode reports whether the mode follows the ambient signal.
func (s *Store) IsSystemMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Mode == ModeSystem
}

// Language returns the selected UI language.
func (s *Store) Language() language.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Language
}

// SetLanguage validates and persists the UI language.
func (s *Store) SetLanguage(tag language.Tag) error {
	matched, err := matchLanguage(tag)
	if err != nil {
		s.logger.Warn("ignoring unsupported language", zap.Stringer("language", tag))
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Language = matched
	s.persist(LanguageKey, matched.String())
	return nil
}

// SetLanguageString parses raw and calls SetLanguage.
func (s *Store) SetLanguageString(raw string) error {
	tag, err := ParseLanguage(raw)
	if err != nil {
		s.logger.Warn("ignoring unsupported language", zap.String("language", raw))
		return err
	}
	return s.SetLanguage(tag)
}

// CycleLanguage advances to the next supported language and returns it.
func (s *Store) CycleLanguage() language.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := supportedLanguages[(languageIndex(s.state.Language)+1)%len(supportedLanguages)]
	s.state.Language = next
	s.persist(LanguageKey, next.String())
	return next
}

func (s *Store) onSystemSignal(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.System = schemeFor(dark)
	s.recompute()
	if s.state.Mode == ModeSystem {
		s.apply()
	}
}

func (s *Store) recompute() {
	s.state.Effective = resolve(s.state.Mode, s.state.System)
}

func (s *Store) apply() {
	if s.presenter != nil {
		s.presenter.Apply(s.state.Effective)
	}
}

func (s *Store) loadMode() Mode {
	raw, ok, err := s.storage.Get(ThemeKey)
	if err != nil {
		s.degrade("read theme", err)
		return s.state.Mode
	}
	if !ok {
		return ModeSystem
	}
	mode, err := ParseMode(raw)
	if err != nil {
		s.logger.Warn("stored theme mode invalid, using system", zap.String("value", raw))
		return ModeSystem
	}
	return mode
}

func (s *Store) loadLanguage() language.Tag {
	raw, ok, err := s.storage.Get(LanguageKey)
	if err != nil {
		s.degrade("read language", err)
		return s.state.Language
	}
	if !ok {
		return DefaultLanguage
	}
	tag, err := ParseLanguage(raw)
	if err != nil {
		s.logger.Warn("stored language invalid, using default",
			zap.String("value", raw), zap.Stringer("default", DefaultLanguage))
		return DefaultLanguage
	}
	return tag
}

func (s *Store) persist(key, value string) {
	if err := s.storage.Set(key, value); err != nil {
		s.degrade("write "+key, err)
		_ = s.storage.Set(key, value)
	}
}

// degrade swaps durable storage for memory after a storage failure, carrying
// the current values over so the session keeps working.
func (s *Store) degrade(op string, err error) {
	if !s.state.Persistent {
		return
	}
	s.logger.Warn("preferences storage failed, continuing in memory",
		zap.String("op", op), zap.Error(err))
	mem := NewMemoryStorage()
	_ = mem.Set(ThemeKey, s.state.Mode.String())
	_ = mem.Set(LanguageKey, s.state.Language.String())
	s.storage = mem
	s.state.Persistent = false
}
