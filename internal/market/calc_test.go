package market

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	if len(got) != len(want) {
		t.Fatalf("MovingAverage len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if MovingAverage(nil, 3) != nil {
		t.Fatalf("MovingAverage(nil) should be nil")
	}
	if MovingAverage([]float64{1}, 0) != nil {
		t.Fatalf("MovingAverage with window 0 should be nil")
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
		wantOK   bool
	}{
		{"rise", 2000, 2100, 5, true},
		{"fall", 2000, 1900, -5, true},
		{"flat", 2000, 2000, 0, true},
		{"from zero", 0, 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PercentChange(tt.from, tt.to)
			if ok != tt.wantOK || !approx(got, tt.want) {
				t.Fatalf("PercentChange(%v, %v) = (%v, %v), want (%v, %v)", tt.from, tt.to, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		pct  float64
		want Trend
	}{
		{5, TrendUp},
		{1, TrendUp},
		{0.5, TrendFlat},
		{-0.99, TrendFlat},
		{-1, TrendDown},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.pct); got != tt.want {
			t.Fatalf("ClassifyTrend(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestProject(t *testing.T) {
	got, ok := Project([]float64{10, 20, 30}, 2)
	if !ok || !approx(got, 32.5) {
		t.Fatalf("Project = (%v, %v), want (32.5, true)", got, ok)
	}

	got, ok = Project([]float64{42}, 3)
	if !ok || got != 42 {
		t.Fatalf("Project single = (%v, %v), want (42, true)", got, ok)
	}

	if _, ok := Project(nil, 3); ok {
		t.Fatalf("Project(nil) ok = true")
	}

	got, _ = Project([]float64{100, 10, 1}, 2)
	if got < 0 {
		t.Fatalf("Project = %v, want non-negative", got)
	}
}

func TestSummarize(t *testing.T) {
	series := PriceSeries{
		Commodity: "wheat",
		Records: []PriceRecord{
			{Date: "2026-10-03", ModalPrice: 2200},
			{Date: "2026-10-01", ModalPrice: 2000},
			{Date: "2026-10-02", ModalPrice: 2100},
		},
	}
	s := Summarize(series, 0)
	if s.Points != 3 {
		t.Fatalf("Points = %d, want 3", s.Points)
	}
	if s.Latest != 2200 || s.Previous != 2100 {
		t.Fatalf("Latest/Previous = %v/%v, want 2200/2100", s.Latest, s.Previous)
	}
	if s.Min != 2000 || s.Max != 2200 || !approx(s.Average, 2100) {
		t.Fatalf("Min/Max/Average = %v/%v/%v", s.Min, s.Max, s.Average)
	}
	if !s.HasChange || s.Trend != TrendUp || !approx(s.Change, 100) {
		t.Fatalf("change = %+v, want +100 up", s)
	}
	if s.Projected <= s.Latest-200 {
		t.Fatalf("Projected = %v looks wrong", s.Projected)
	}

	empty := Summarize(PriceSeries{}, 3)
	if empty.Points != 0 || empty.HasChange {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestSeriesSortedAndLatest(t *testing.T) {
	series := PriceSeries{Records: []PriceRecord{
		{Date: "2026-10-02", Market: "b"},
		{Date: "2026-10-01", Market: "a"},
	}}
	sorted := series.Sorted()
	if sorted[0].Market != "a" || sorted[1].Market != "b" {
		t.Fatalf("Sorted = %+v", sorted)
	}
	if series.Records[0].Market != "b" {
		t.Fatalf("Sorted mutated the series")
	}
	latest, ok := series.Latest()
	if !ok || latest.Market != "b" {
		t.Fatalf("Latest = %+v, %v", latest, ok)
	}
	if _, ok := (PriceSeries{}).Latest(); ok {
		t.Fatalf("Latest on empty series ok = true")
	}
}
