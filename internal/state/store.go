package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kisanportal/kisan/internal/market"
)

// Snapshot represents the latest market data available to the UI.
type Snapshot struct {
	Commodity           string
	Series              market.PriceSeries
	HasSeries           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a store tracking commodity.
func NewStore(commodity string) *Store {
	s := &Store{}
	s.snapshot.Commodity = normalize(commodity)
	return s
}

// Commodity returns the commodity currently being tracked.
func (s *Store) Commodity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Commodity
}

// SetCommodity switches the tracked commodity. Data for the previous
// commodity is dropped; the failure count restarts.
func (s *Store) SetCommodity(commodity string) {
	commodity = normalize(commodity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if commodity == s.snapshot.Commodity {
		return
	}
	s.snapshot = Snapshot{Commodity: commodity}
}

// Update records the result of fetching commodity. When err is non-nil the
// previous data is kept but the error is recorded for visibility. Results for
// a commodity other than the tracked one are ignored and Update reports false.
func (s *Store) Update(commodity string, series *market.PriceSeries, err error) bool {
	commodity = normalize(commodity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if commodity != s.snapshot.Commodity {
		return false
	}

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return true
	}

	if series != nil {
		s.snapshot.Series = series.Clone()
		s.snapshot.HasSeries = true
	} else {
		s.snapshot.Series = market.PriceSeries{}
		s.snapshot.HasSeries = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Series = s.snapshot.Series.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func normalize(commodity string) string {
	return strings.ToLower(strings.TrimSpace(commodity))
}
