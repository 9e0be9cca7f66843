// Package debounce collapses bursts of requests into one trailing fetch.
//
// Every Request bumps a version counter and restarts the trailing timer. When
// the timer fires the wrapped fetch runs with the latest input, and its result
// is committed only if no newer Request has arrived in the meantime. Earlier
// in-flight fetches are not aborted; their results are dropped on arrival.
package debounce

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is the trailing quiet period.
const DefaultDelay = 500 * time.Millisecond

// FetchFunc produces a value for an input.
type FetchFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Result is a committed fetch outcome.
type Result[In, Out any] struct {
	Input In
	Value Out
	Err   error
}

// State is a copy of the coordinator's observable values.
type State[In, Out any] struct {
	// Pending is the most recently requested input.
	Pending In
	// DebouncedValue is the input most recently handed to the fetch.
	DebouncedValue In
	// IsDebouncing is true from a Request until its timer dispatches.
	IsDebouncing bool
	// Loading is true from dispatch until the latest fetch settles.
	Loading bool
	// Value is the last successful result; Err is the last committed error.
	Value    Out
	Err      error
	HasValue bool
}

// Options configure a Coordinator.
type Options[In, Out any] struct {
	Delay time.Duration
	// OnSettle runs after a result is committed, without the lock held.
	// Stale results never reach it.
	OnSettle func(Result[In, Out])
	// OnDispatch runs when the timer hands an input to the fetch.
	OnDispatch func(In)
	Logger     *zap.Logger
}

// Coordinator debounces requests for a FetchFunc.
type Coordinator[In, Out any] struct {
	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	fetch      FetchFunc[In, Out]
	delay      time.Duration
	onSettle   func(Result[In, Out])
	onDispatch func(In)
	logger     *zap.Logger

	timer   *time.Timer
	version uint64
	state   State[In, Out]
	closed  bool
	wg      sync.WaitGroup
}

// New builds a Coordinator. Fetches run with a context derived from ctx that
// is cancelled by Close.
func New[In, Out any](ctx context.Context, fetch FetchFunc[In, Out], opts Options[In, Out]) *Coordinator[In, Out] {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cctx, cancel := context.WithCancel(ctx)
	return &Coordinator[In, Out]{
		ctx:        cctx,
		cancel:     cancel,
		fetch:      fetch,
		delay:      delay,
		onSettle:   opts.OnSettle,
		onDispatch: opts.OnDispatch,
		logger:     logger,
	}
}

// Request records in as the latest input and restarts the trailing timer.
func (c *Coordinator[In, Out]) Request(in In) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.version++
	v := c.version
	c.state.Pending = in
	c.state.IsDebouncing = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() { c.fire(v) })
}

// Flush dispatches a pending request immediately instead of waiting for the
// quiet period. It does nothing when no request is pending.
func (c *Coordinator[In, Out]) Flush() {
	c.mu.Lock()
	if c.closed || !c.state.IsDebouncing || c.timer == nil {
		c.mu.Unlock()
		return
	}
	if !c.timer.Stop() {
		// Already firing on its own.
		c.mu.Unlock()
		return
	}
	v := c.version
	c.mu.Unlock()

	go c.fire(v)
}

// Cancel drops a pending request without dispatching it.
func (c *Coordinator[In, Out]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state.IsDebouncing = false
	// Anything still in flight belongs to a request that is no longer wanted.
	c.version++
	c.state.Loading = false
}

// State returns a copy of the current state.
func (c *Coordinator[In, Out]) State() State[In, Out] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the timer, cancels in-flight fetches and waits for them.
func (c *Coordinator[In, Out]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state.IsDebouncing = false
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator[In, Out]) fire(v uint64) {
	c.mu.Lock()
	if c.closed || v != c.version {
		c.mu.Unlock()
		return
	}
	in := c.state.Pending
	c.timer = nil
	c.state.IsDebouncing = false
	c.state.DebouncedValue = in
	c.state.Loading = true
	c.wg.Add(1)
	onDispatch := c.onDispatch
	c.mu.Unlock()

	defer c.wg.Done()
	if onDispatch != nil {
		onDispatch(in)
	}

	out, err := c.fetch(c.ctx, in)

	c.mu.Lock()
	if c.closed || v != c.version {
		c.mu.Unlock()
		c.logger.Debug("discarding stale result", zap.Uint64("version", v))
		return
	}
	if err == nil {
		c.state.Value = out
		c.state.HasValue = true
	}
	c.state.Err = err
	c.state.Loading = false
	onSettle := c.onSettle
	c.mu.Unlock()

	if onSettle != nil {
		onSettle(Result[In, Out]{Input: in, Value: out, Err: err})
	}
}
