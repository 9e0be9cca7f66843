package notify

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestQueue_ProducersAssignKindsAndDefaults(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	s := q.Success("saved")
	e := q.Error("failed", 2*time.Second)
	w := q.Warning("careful")
	i := q.Info("fyi")
	l := q.Loading("fetching")

	items := q.Items()
	require.Equal(t, []string{s, e, w, i, l}, ids(items))

	wantKinds := []Kind{KindSuccess, KindError, KindWarning, KindInfo, KindLoading}
	for idx, it := range items {
		assert.Equal(t, wantKinds[idx], it.Kind)
		assert.False(t, it.CreatedAt.IsZero())
	}
	assert.Equal(t, DefaultDuration, items[0].Duration)
	assert.Equal(t, 2*time.Second, items[1].Duration)
	assert.Equal(t, time.Duration(0), items[4].Duration)
}

func TestQueue_IDsAreUnique(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	seen := make(map[string]bool)
	for range 200 {
		id := q.Info("x")
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestQueue_IndependentExpiryPreservesOrder(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	a := q.Success("A", 100*time.Millisecond)
	b := q.Error("B", 300*time.Millisecond)
	require.Equal(t, []string{a, b}, ids(q.Items()), "A is presented before B")

	time.Sleep(200 * time.Millisecond)
	require.Equal(t, []string{b}, ids(q.Items()))

	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestQueue_LoadingDoesNotExpire(t *testing.T) {
	q := NewQueue(WithDefaultDuration(30 * time.Millisecond))
	t.Cleanup(q.Close)

	id := q.Loading("working")
	q.Info("short")
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, []string{id}, ids(q.Items()))
}

func TestQueue_UpdateInPlace(t *testing.T) {
	q := NewQueue(WithDefaultDuration(50 * time.Millisecond))
	t.Cleanup(q.Close)

	first := q.Info("first", time.Minute)
	id := q.Loading("fetching prices")
	last := q.Info("last", time.Minute)

	q.Update(id, "prices loaded", KindSuccess)
	items := q.Items()
	require.Equal(t, []string{first, id, last}, ids(items))
	assert.Equal(t, "prices loaded", items[1].Message)
	assert.Equal(t, KindSuccess, items[1].Kind)

	// Resolving a Loading item arms its expiry.
	require.Eventually(t, func() bool {
		return len(q.Items()) == 2
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, []string{first, last}, ids(q.Items()))
}

func TestQueue_UpdateToLoadingStopsExpiry(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	id := q.Info("queued", 50*time.Millisecond)
	q.Update(id, "working", KindLoading)
	time.Sleep(120 * time.Millisecond)

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, KindLoading, items[0].Kind)
	assert.Equal(t, time.Duration(0), items[0].Duration)
}

func TestQueue_LateExpiryAfterUpdateToLoadingIsIgnored(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	id := q.Info("queued", time.Minute)
	q.mu.Lock()
	e := q.entries[0]
	firedGen := e.gen
	q.mu.Unlock()

	// The timer of the Info arming fires but only gets the lock after the
	// item has turned into Loading.
	q.Update(id, "working", KindLoading)
	q.expire(e, firedGen)

	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, KindLoading, items[0].Kind)

	// Re-arming by an update back to an expiring kind is honoured.
	q.Update(id, "done", KindSuccess)
	q.mu.Lock()
	current := e.gen
	q.mu.Unlock()
	q.expire(e, firedGen)
	require.Equal(t, 1, q.Len())
	q.expire(e, current)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_UpdateAndRemoveUnknownAreNoOps(t *testing.T) {
	var changes atomic.Int32
	q := NewQueue(WithOnChange(func() { changes.Add(1) }))
	t.Cleanup(q.Close)

	a := q.Success("A", time.Minute)
	q.Info("B", time.Minute)
	q.Remove(a)
	before := changes.Load()

	require.NotPanics(t, func() {
		q.Update(a, "x", KindInfo)
		q.Remove(a)
		q.Remove("does-not-exist")
	})
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, before, changes.Load())
}

func TestQueue_UpdateRejectsInvalidKind(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	id := q.Info("hello", time.Minute)
	q.Update(id, "changed", Kind(99))
	items := q.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Message)
}

func TestQueue_RemoveStopsTimer(t *testing.T) {
	var changes atomic.Int32
	q := NewQueue(WithOnChange(func() { changes.Add(1) }))
	t.Cleanup(q.Close)

	id := q.Success("bye", 30*time.Millisecond)
	q.Remove(id)
	require.Equal(t, int32(2), changes.Load())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), changes.Load(), "removed item must not expire again")
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				id := q.Info("tick", 20*time.Millisecond)
				if id == "" {
					t.Error("empty id")
				}
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return q.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestQueue_NilIsSafe(t *testing.T) {
	var q *Queue
	var n Notifier = q
	require.NotPanics(t, func() {
		assert.Empty(t, n.Success("x"))
		assert.Empty(t, n.Error("x"))
		assert.Empty(t, n.Warning("x"))
		assert.Empty(t, n.Info("x"))
		assert.Empty(t, n.Loading("x"))
		n.Update("id", "x", KindInfo)
		n.Remove("id")
		assert.Nil(t, q.Items())
		assert.Zero(t, q.Len())
		q.Close()
	})
}

func TestQueue_ClosedIgnoresProducers(t *testing.T) {
	q := NewQueue()
	q.Success("before", 20*time.Millisecond)
	q.Close()

	assert.Empty(t, q.Success("after"))
	assert.Zero(t, q.Len())
}

func TestFallback(t *testing.T) {
	n := Fallback(nil, zap.NewNop())
	require.IsType(t, Logging{}, n)
	require.NotPanics(t, func() {
		n.Success("x")
		n.Error("x")
		n.Loading("x")
		n.Update("", "x", KindError)
		n.Remove("")
		Logging{}.Info("no logger")
	})

	q := NewQueue()
	t.Cleanup(q.Close)
	assert.Same(t, q, Fallback(q, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "loading", KindLoading.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.False(t, KindLoading.Expires())
	assert.True(t, KindError.Expires())
}
