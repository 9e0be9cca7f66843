package prefs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for values outside Light, Dark and System.
var ErrInvalidMode = errors.New("invalid theme mode")

// Mode is the user's explicit theme intent.
type Mode int

const (
	ModeSystem Mode = iota
	ModeLight
	ModeDark
)

// Modes lists every valid Mode.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark, ModeSystem}
}

func (m Mode) String() string {
	switch m {
	case ModeSystem:
		return "system"
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeSystem, ModeLight, ModeDark:
		return true
	default:
		return false
	}
}

// ParseMode converts a stored or user-supplied name into a Mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "system":
		return ModeSystem, nil
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	default:
		return ModeSystem, fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// Scheme is a concrete Light or Dark value.
type Scheme int

const (
	SchemeLight Scheme = iota
	SchemeDark
)

func (s Scheme) String() string {
	if s == SchemeDark {
		return "dark"
	}
	return "light"
}

// Opposite flips Light and Dark.
func (s Scheme) Opposite() Scheme {
	if s == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

func modeFor(s Scheme) Mode {
	if s == SchemeDark {
		return ModeDark
	}
	return ModeLight
}

func schemeFor(dark bool) Scheme {
	if dark {
		return SchemeDark
	}
	return SchemeLight
}

// resolve computes the effective scheme for mode against the ambient signal.
func resolve(mode Mode, system Scheme) Scheme {
	switch mode {
	case ModeLight:
		return SchemeLight
	case ModeDark:
		return SchemeDark
	case ModeSystem:
		return system
	default:
		return system
	}
}
