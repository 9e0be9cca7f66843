package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kisanportal/kisan/internal/market"
)

func series(prices ...float64) *market.PriceSeries {
	s := &market.PriceSeries{Commodity: "wheat", Unit: "quintal"}
	for i, p := range prices {
		s.Records = append(s.Records, market.PriceRecord{
			Date:       time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Market:     "Pune",
			ModalPrice: p,
		})
	}
	return s
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	s := NewStore("Wheat")

	before := time.Now()
	if !s.Update("wheat", series(2100, 2150), nil) {
		t.Fatalf("Update returned false for tracked commodity")
	}

	snap := s.Snapshot()
	if !snap.HasSeries || len(snap.Series.Records) != 2 {
		t.Fatalf("snapshot series = %#v, want 2 records", snap.Series)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	snap.Series.Records[0].ModalPrice = 1
	snap2 := s.Snapshot()
	if snap2.Series.Records[0].ModalPrice != 2100 {
		t.Fatalf("Snapshot should clone records; got %v want 2100", snap2.Series.Records[0].ModalPrice)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	s := NewStore("wheat")

	s.Update("wheat", series(2100), nil)

	origErr := errors.New("boom")
	s.Update("wheat", nil, origErr)

	snap := s.Snapshot()
	if !snap.HasSeries || len(snap.Series.Records) != 1 {
		t.Fatalf("series changed on error: got %#v", snap.Series)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	s := NewStore("wheat")

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update("wheat", nil, errors.New("fail 1"))
	if got := s.Snapshot().ConsecutiveFailures; got != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", got)
	}
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Update("wheat", nil, errors.New("fail 2"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Update("wheat", series(2000), nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v, want 0 false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_IgnoresResultsForOtherCommodity(t *testing.T) {
	s := NewStore("wheat")
	s.SetCommodity("Onion")

	if s.Update("wheat", series(2100), nil) {
		t.Fatalf("Update returned true for stale commodity")
	}
	snap := s.Snapshot()
	if snap.Commodity != "onion" {
		t.Fatalf("Commodity = %q, want %q", snap.Commodity, "onion")
	}
	if snap.HasSeries {
		t.Fatalf("HasSeries = true, want stale result dropped")
	}
}

func TestStore_SetCommodityResetsData(t *testing.T) {
	s := NewStore("wheat")
	s.Update("wheat", nil, errors.New("down"))
	s.Update("wheat", series(2100), nil)
	s.Update("wheat", nil, errors.New("down"))

	s.SetCommodity("wheat")
	if got := s.Snapshot().ConsecutiveFailures; got != 1 {
		t.Fatalf("same commodity should keep data; failures = %d, want 1", got)
	}

	s.SetCommodity("rice")
	snap := s.Snapshot()
	if snap.HasSeries || snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot after switch = %#v, want reset", snap)
	}
	if s.Commodity() != "rice" {
		t.Fatalf("Commodity() = %q, want rice", s.Commodity())
	}
}
