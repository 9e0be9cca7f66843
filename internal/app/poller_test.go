package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kisanportal/kisan/internal/market"
	"github.com/kisanportal/kisan/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, 60 * time.Second},
		{"two failures", 2, 120 * time.Second},
		{"three failures", 3, 240 * time.Second},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 480s, capped to 5m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
		if got < baseInterval {
			t.Errorf("calculateBackoff(%d, %v) = %v, below base", failures, baseInterval, got)
		}
	}
}

func TestCalculateBackoff_LongIntervalUnchanged(t *testing.T) {
	if got := calculateBackoff(3, 10*time.Minute); got != 10*time.Minute {
		t.Fatalf("calculateBackoff(3, 10m) = %v, want 10m", got)
	}
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	series  market.PriceSeries
	err     error
	onFetch func()
}

func (f *fakeFetcher) FetchPrices(_ context.Context, q market.PriceQuery) (market.PriceSeries, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q.Commodity)
	onFetch := f.onFetch
	f.mu.Unlock()
	if onFetch != nil {
		onFetch()
	}
	return f.series, f.err
}

func (f *fakeFetcher) FetchCommodities(context.Context) ([]market.Commodity, error) {
	return nil, nil
}

func TestRefresh_Success(t *testing.T) {
	store := state.NewStore("onion")
	client := &fakeFetcher{series: market.PriceSeries{Commodity: "onion", Records: []market.PriceRecord{{Date: "2026-01-01", ModalPrice: 2000}}}}

	refresh(context.Background(), store, client, nil)

	snap := store.Snapshot()
	if !snap.HasSeries || len(snap.Series.Records) != 1 {
		t.Fatalf("snapshot = %#v, want one record", snap)
	}
	if len(client.calls) != 1 || client.calls[0] != "onion" {
		t.Fatalf("calls = %v, want [onion]", client.calls)
	}
}

func TestRefresh_ErrorCountsFailure(t *testing.T) {
	store := state.NewStore("onion")
	client := &fakeFetcher{err: errors.New("connection refused")}

	refresh(context.Background(), store, client, nil)
	refresh(context.Background(), store, client, nil)

	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 2 true", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestRefresh_DropsResultAfterCommodityChange(t *testing.T) {
	store := state.NewStore("wheat")
	client := &fakeFetcher{series: market.PriceSeries{Commodity: "wheat", Records: []market.PriceRecord{{Date: "2026-01-01"}}}}
	client.onFetch = func() { store.SetCommodity("onion") }

	refresh(context.Background(), store, client, nil)

	snap := store.Snapshot()
	if snap.Commodity != "onion" || snap.HasSeries {
		t.Fatalf("snapshot = %#v, want onion with no series", snap)
	}
}

func TestPoll_StopsOnCancel(t *testing.T) {
	store := state.NewStore("onion")
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeFetcher{}
	client.onFetch = cancel

	done := make(chan error, 1)
	go func() { done <- Poll(ctx, store, client, time.Hour, nil) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Poll() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Poll did not return after cancel")
	}
	if len(client.calls) != 1 {
		t.Fatalf("calls = %d, want 1 immediate poll", len(client.calls))
	}
}
