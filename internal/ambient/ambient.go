// Package ambient reports the host's light/dark preference and its changes.
package ambient

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Source yields the ambient "prefers dark" signal.
type Source interface {
	// Current returns the present signal. ok is false when the host offers none.
	Current() (dark bool, ok bool)
	// Subscribe registers fn for signal changes until the returned
	// Subscription is closed.
	Subscribe(fn func(dark bool)) (Subscription, error)
}

// Subscription releases a Subscribe registration.
type Subscription interface {
	Close() error
}

type nopSubscription struct{}

func (nopSubscription) Close() error { return nil }

// Static is a Source that never changes.
type Static struct {
	Dark      bool
	Supported bool
}

// Current implements Source.
func (s Static) Current() (bool, bool) {
	return s.Dark, s.Supported
}

// Subscribe implements Source. No events are ever delivered.
func (Static) Subscribe(func(bool)) (Subscription, error) {
	return nopSubscription{}, nil
}

// Terminal probes the controlling terminal's background color.
type Terminal struct{}

// Current implements Source. Without a terminal there is no signal.
func (Terminal) Current() (bool, bool) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false, false
	}
	return lipgloss.HasDarkBackground(), true
}

// Subscribe implements Source. Terminals do not announce background changes.
func (Terminal) Subscribe(func(bool)) (Subscription, error) {
	return nopSubscription{}, nil
}

// ParseSignal interprets appearance text such as "dark", "light" or the
// freedesktop color-scheme values ("prefer-dark", "prefer-light", "default").
func ParseSignal(raw string) (dark bool, ok bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.Trim(value, `'"`)
	switch value {
	case "dark", "prefer-dark":
		return true, true
	case "light", "prefer-light", "default":
		return false, true
	default:
		return false, false
	}
}
