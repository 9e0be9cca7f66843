package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	item  Item
	timer *time.Timer
	// gen identifies the current arming; a timer from an earlier arming that
	// fires late finds a different value and leaves the entry alone.
	gen uint64
}

// Queue is the in-memory notification collection.
type Queue struct {
	mu         sync.Mutex
	entries    []*entry
	defaultTTL time.Duration
	onChange   func()
	logger     *zap.Logger
	now        func() time.Time
	closed     bool
}

var _ Notifier = (*Queue)(nil)

// Option configures a Queue.
type Option func(*Queue)

// WithDefaultDuration overrides DefaultDuration.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.defaultTTL = d
		}
	}
}

// WithOnChange registers fn to run after every change to the item list,
// including expiries. fn runs without the queue lock held and may be called
// from timer goroutines.
func WithOnChange(fn func()) Option {
	return func(q *Queue) { q.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// NewQueue returns an empty Queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		defaultTTL: DefaultDuration,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Success implements Notifier.
func (q *Queue) Success(message string, duration ...time.Duration) string {
	return q.push(KindSuccess, message, duration)
}

// Error implements Notifier.
func (q *Queue) Error(message string, duration ...time.Duration) string {
	return q.push(KindError, message, duration)
}

// Warning implements Notifier.
func (q *Queue) Warning(message string, duration ...time.Duration) string {
	return q.push(KindWarning, message, duration)
}

// Info implements Notifier.
func (q *Queue) Info(message string, duration ...time.Duration) string {
	return q.push(KindInfo, message, duration)
}

// Loading adds an item that stays until it is updated to another kind or
// removed.
func (q *Queue) Loading(message string) string {
	return q.push(KindLoading, message, nil)
}

func (q *Queue) push(kind Kind, message string, duration []time.Duration) string {
	if q == nil {
		return ""
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	e := &entry{item: Item{
		ID:        newID(),
		Kind:      kind,
		Message:   message,
		CreatedAt: q.now(),
	}}
	if kind.Expires() {
		e.item.Duration = q.ttl(duration)
		q.arm(e)
	}
	q.entries = append(q.entries, e)
	id := e.item.ID
	q.mu.Unlock()

	q.logger.Debug("notification added",
		zap.String("id", id), zap.Stringer("kind", kind), zap.String("message", message))
	q.changed()
	return id
}

// Update replaces the message and kind of an item in place. Unknown ids are
// ignored. Turning a Loading item into any other kind starts its expiry
// timer; turning an item into Loading stops it.
func (q *Queue) Update(id, message string, kind Kind) {
	if q == nil {
		return
	}
	if !kind.Valid() {
		q.logger.Warn("ignoring notification update with invalid kind", zap.String("id", id), zap.Int("kind", int(kind)))
		return
	}
	q.mu.Lock()
	idx := q.index(id)
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	e := q.entries[idx]
	e.item.Message = message
	e.item.Kind = kind
	switch {
	case !kind.Expires() && e.timer != nil:
		q.disarm(e)
		e.item.Duration = 0
	case kind.Expires() && e.timer == nil:
		e.item.Duration = q.defaultTTL
		q.arm(e)
	}
	q.mu.Unlock()
	q.changed()
}

// Remove deletes an item. Unknown ids are ignored.
func (q *Queue) Remove(id string) {
	if q == nil {
		return
	}
	q.mu.Lock()
	idx := q.index(id)
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.dropLocked(idx)
	q.mu.Unlock()
	q.changed()
}

// Items returns the current items in insertion order.
func (q *Queue) Items() []Item {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.item
	}
	return out
}

// Len returns the number of items.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close stops every timer and drops all items. Later producer calls are
// ignored.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	q.mu.Lock()
	for _, e := range q.entries {
		q.disarm(e)
	}
	q.entries = nil
	q.closed = true
	q.mu.Unlock()
}

func (q *Queue) ttl(duration []time.Duration) time.Duration {
	if len(duration) > 0 && duration[0] > 0 {
		return duration[0]
	}
	return q.defaultTTL
}

// arm starts e's expiry timer. Callers hold q.mu.
func (q *Queue) arm(e *entry) {
	e.gen++
	gen := e.gen
	e.timer = time.AfterFunc(e.item.Duration, func() { q.expire(e, gen) })
}

// disarm stops e's timer. A timer that already fired and is waiting for q.mu
// no longer matches e.gen. Callers hold q.mu.
func (q *Queue) disarm(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

// expire removes e if it is still queued and still armed by the timer that
// fired. The entry pointer, not the id, is the identity, so a timer can never
// remove anything but its own item.
func (q *Queue) expire(e *entry, gen uint64) {
	q.mu.Lock()
	idx := slices.Index(q.entries, e)
	if idx < 0 || e.gen != gen {
		q.mu.Unlock()
		return
	}
	q.entries = slices.Delete(q.entries, idx, idx+1)
	e.timer = nil
	q.mu.Unlock()
	q.changed()
}

func (q *Queue) dropLocked(idx int) {
	q.disarm(q.entries[idx])
	q.entries = slices.Delete(q.entries, idx, idx+1)
}

func (q *Queue) index(id string) int {
	return slices.IndexFunc(q.entries, func(e *entry) bool { return e.item.ID == id })
}

func (q *Queue) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}

// newID returns a time-ordered UUIDv7, falling back to a random UUID.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
