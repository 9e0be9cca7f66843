package debounce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu      sync.Mutex
	inputs  []int
	settled []Result[int, string]
}

func (r *recorder) fetch(_ context.Context, in int) (string, error) {
	r.mu.Lock()
	r.inputs = append(r.inputs, in)
	r.mu.Unlock()
	return "value-" + string(rune('0'+in)), nil
}

func (r *recorder) settle(res Result[int, string]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled = append(r.settled, res)
}

func (r *recorder) dispatched() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.inputs...)
}

func (r *recorder) results() []Result[int, string] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result[int, string](nil), r.settled...)
}

func TestCoordinator_BurstDispatchesOnceWithLatest(t *testing.T) {
	rec := &recorder{}
	c := New(context.Background(), rec.fetch, Options[int, string]{
		Delay:    50 * time.Millisecond,
		OnSettle: rec.settle,
	})
	t.Cleanup(c.Close)

	c.Request(1)
	c.Request(2)
	c.Request(3)

	st := c.State()
	assert.True(t, st.IsDebouncing)
	assert.Equal(t, 3, st.Pending)

	require.Eventually(t, func() bool { return len(rec.results()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, []int{3}, rec.dispatched())
	st = c.State()
	assert.False(t, st.IsDebouncing)
	assert.False(t, st.Loading)
	assert.True(t, st.HasValue)
	assert.Equal(t, 3, st.DebouncedValue)
	assert.Equal(t, "value-3", st.Value)
	assert.Equal(t, 3, rec.results()[0].Input)
}

func TestCoordinator_DefaultDelay(t *testing.T) {
	c := New(context.Background(), func(context.Context, int) (int, error) { return 0, nil }, Options[int, int]{})
	t.Cleanup(c.Close)
	assert.Equal(t, DefaultDelay, c.delay)
}

func TestCoordinator_StaleResultIsDiscarded(t *testing.T) {
	release := map[int]chan struct{}{
		2: make(chan struct{}),
		3: make(chan struct{}),
	}
	var settled []Result[int, int]
	var mu sync.Mutex

	c := New(context.Background(), func(ctx context.Context, in int) (int, error) {
		select {
		case <-release[in]:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
		return in * 100, nil
	}, Options[int, int]{
		Delay: 20 * time.Millisecond,
		OnSettle: func(r Result[int, int]) {
			mu.Lock()
			defer mu.Unlock()
			settled = append(settled, r)
		},
	})
	t.Cleanup(c.Close)

	c.Request(2)
	require.Eventually(t, func() bool { return c.State().Loading }, time.Second, 5*time.Millisecond)

	c.Request(3)
	require.Eventually(t, func() bool {
		st := c.State()
		return st.DebouncedValue == 3 && st.Loading
	}, time.Second, 5*time.Millisecond)

	// 3 settles first, then the superseded 2.
	close(release[3])
	require.Eventually(t, func() bool { return c.State().HasValue }, time.Second, 5*time.Millisecond)
	close(release[2])
	time.Sleep(50 * time.Millisecond)

	st := c.State()
	assert.Equal(t, 300, st.Value)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, settled, 1)
	assert.Equal(t, 3, settled[0].Input)
}

func TestCoordinator_LateResultAfterNewRequestIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	c := New(context.Background(), func(ctx context.Context, in int) (int, error) {
		calls.Add(1)
		if in == 2 {
			<-release
		}
		return in, nil
	}, Options[int, int]{Delay: 20 * time.Millisecond})
	t.Cleanup(c.Close)

	c.Request(2)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	c.Request(3)
	close(release)
	require.Eventually(t, func() bool { return c.State().HasValue }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, c.State().Value)
}

func TestCoordinator_ErrorIsCommittedAndKeepsValue(t *testing.T) {
	fail := atomic.Bool{}
	c := New(context.Background(), func(_ context.Context, in int) (int, error) {
		if fail.Load() {
			return 0, errors.New("market offline")
		}
		return in, nil
	}, Options[int, int]{Delay: 10 * time.Millisecond})
	t.Cleanup(c.Close)

	c.Request(7)
	require.Eventually(t, func() bool { return c.State().HasValue }, time.Second, 5*time.Millisecond)

	fail.Store(true)
	c.Request(8)
	require.Eventually(t, func() bool { return c.State().Err != nil }, time.Second, 5*time.Millisecond)

	st := c.State()
	assert.EqualError(t, st.Err, "market offline")
	assert.Equal(t, 7, st.Value)
	assert.False(t, st.Loading)
}

func TestCoordinator_FlushDispatchesImmediately(t *testing.T) {
	rec := &recorder{}
	c := New(context.Background(), rec.fetch, Options[int, string]{Delay: time.Hour})
	t.Cleanup(c.Close)

	c.Flush() // nothing pending
	c.Request(4)
	c.Flush()

	require.Eventually(t, func() bool { return c.State().HasValue }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{4}, rec.dispatched())
}

func TestCoordinator_CancelDropsPending(t *testing.T) {
	rec := &recorder{}
	c := New(context.Background(), rec.fetch, Options[int, string]{Delay: 20 * time.Millisecond})
	t.Cleanup(c.Close)

	c.Request(5)
	c.Cancel()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.dispatched())
	assert.False(t, c.State().IsDebouncing)
}

func TestCoordinator_OnDispatch(t *testing.T) {
	var got atomic.Int32
	c := New(context.Background(), func(_ context.Context, in int) (int, error) { return in, nil }, Options[int, int]{
		Delay:      10 * time.Millisecond,
		OnDispatch: func(in int) { got.Store(int32(in)) },
	})
	t.Cleanup(c.Close)

	c.Request(9)
	require.Eventually(t, func() bool { return got.Load() == 9 }, time.Second, 5*time.Millisecond)
}

func TestCoordinator_CloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	c := New(context.Background(), func(ctx context.Context, _ int) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}, Options[int, int]{Delay: 10 * time.Millisecond})

	c.Request(1)
	<-started
	c.Close()
	c.Close()

	c.Request(2)
	assert.False(t, c.State().IsDebouncing, "closed coordinator ignores requests")
}
