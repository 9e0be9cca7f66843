// Package notify holds transient status messages shown to the user.
//
// A Queue keeps items in insertion order. Every item except Loading expires
// on its own timer; each item is removed exactly once, either by its timer or
// by Remove. A nil *Queue is a valid Notifier whose calls do nothing, and
// Logging serves as a log-only stand-in when no queue is wired.
package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultDuration is how long an item stays visible unless overridden.
const DefaultDuration = 5 * time.Second

// Kind classifies an item.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindWarning
	KindInfo
	KindLoading
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindInfo:
		return "info"
	case KindLoading:
		return "loading"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is a defined Kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo, KindLoading:
		return true
	default:
		return false
	}
}

// Expires reports whether items of this kind get an expiry timer.
func (k Kind) Expires() bool {
	return k != KindLoading
}

// Item is a single notification.
type Item struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration // zero for Loading
	CreatedAt time.Time
}

// Notifier is the producer surface used by the rest of the application.
type Notifier interface {
	Success(message string, duration ...time.Duration) string
	Error(message string, duration ...time.Duration) string
	Warning(message string, duration ...time.Duration) string
	Info(message string, duration ...time.Duration) string
	Loading(message string) string
	Update(id, message string, kind Kind)
	Remove(id string)
}

// Fallback returns n, or a Logging notifier when n is nil.
func Fallback(n Notifier, logger *zap.Logger) Notifier {
	if n == nil {
		return Logging{Logger: logger}
	}
	return n
}

// Logging writes notifications to the log instead of showing them.
type Logging struct {
	Logger *zap.Logger
}

var _ Notifier = Logging{}

func (l Logging) log(kind Kind, message string) {
	if l.Logger == nil {
		return
	}
	fields := []zap.Field{zap.String("kind", kind.String()), zap.String("message", message)}
	if kind == KindError {
		l.Logger.Warn("notification", fields...)
		return
	}
	l.Logger.Info("notification", fields...)
}

// Success implements Notifier.
func (l Logging) Success(message string, _ ...time.Duration) string {
	l.log(KindSuccess, message)
	return ""
}

// Error implements Notifier.
func (l Logging) Error(message string, _ ...time.Duration) string {
	l.log(KindError, message)
	return ""
}

// Warning implements Notifier.
func (l Logging) Warning(message string, _ ...time.Duration) string {
	l.log(KindWarning, message)
	return ""
}

// Info implements Notifier.
func (l Logging) Info(message string, _ ...time.Duration) string {
	l.log(KindInfo, message)
	return ""
}

// Loading implements Notifier.
func (l Logging) Loading(message string) string {
	l.log(KindLoading, message)
	return ""
}

// Update implements Notifier.
func (l Logging) Update(_ string, message string, kind Kind) {
	l.log(kind, message)
}

// Remove implements Notifier.
func (Logging) Remove(string) {}
