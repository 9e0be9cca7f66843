package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kisanportal/kisan/internal/prefs"
)

// SchemeRelay carries scheme changes from the preference store into the
// Bubble Tea event loop. Apply never blocks: when the UI has not yet consumed
// the previous scheme it is replaced by the newer one.
type SchemeRelay struct {
	ch chan prefs.Scheme
}

var _ prefs.Presenter = (*SchemeRelay)(nil)

// NewSchemeRelay returns an empty relay.
func NewSchemeRelay() *SchemeRelay {
	return &SchemeRelay{ch: make(chan prefs.Scheme, 1)}
}

// Apply implements prefs.Presenter.
func (r *SchemeRelay) Apply(scheme prefs.Scheme) {
	for {
		select {
		case r.ch <- scheme:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

// C returns the receive side of the relay.
func (r *SchemeRelay) C() <-chan prefs.Scheme {
	return r.ch
}

// Signal is a coalescing wake-up: any number of Notify calls before the UI
// listens produce a single wake-up.
type Signal struct {
	ch chan struct{}
}

// NewSignal returns an idle signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify wakes the listener without blocking.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the receive side of the signal.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}

// Messages

type schemeMsg prefs.Scheme

type signalMsg struct{}

// Commands

func listenScheme(ctx context.Context, r *SchemeRelay) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case s := <-r.C():
			return schemeMsg(s)
		}
	}
}

func listenSignal(ctx context.Context, s *Signal) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-s.C():
			return signalMsg{}
		}
	}
}
