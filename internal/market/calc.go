package market

import "math"

// Trend is the direction of recent price movement.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "flat"
	}
}

// DefaultWindow is the moving-average window used by Summarize.
const DefaultWindow = 7

// flatThreshold is the percent change below which a move counts as flat.
const flatThreshold = 1.0

// ModalPrices returns modal prices oldest first.
func ModalPrices(series PriceSeries) []float64 {
	sorted := series.Sorted()
	out := make([]float64, len(sorted))
	for i, r := range sorted {
		out[i] = r.ModalPrice
	}
	return out
}

// MovingAverage returns the trailing simple moving average. Entry i averages
// values[max(0, i-window+1)..i], so the result has the same length as values.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := min(i+1, window)
		out[i] = sum / float64(n)
	}
	return out
}

// PercentChange returns the change from one value to another in percent. ok
// is false when from is zero.
func PercentChange(from, to float64) (pct float64, ok bool) {
	if from == 0 {
		return 0, false
	}
	return (to - from) / math.Abs(from) * 100, true
}

// ClassifyTrend buckets a percent change.
func ClassifyTrend(pct float64) Trend {
	switch {
	case pct >= flatThreshold:
		return TrendUp
	case pct <= -flatThreshold:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Project estimates the next value by extending the moving average by its
// mean step over the window.
func Project(values []float64, window int) (float64, bool) {
	avg := MovingAverage(values, window)
	if len(avg) == 0 {
		return 0, false
	}
	last := avg[len(avg)-1]
	if len(avg) == 1 {
		return last, true
	}
	span := min(window, len(avg)-1)
	first := avg[len(avg)-1-span]
	step := (last - first) / float64(span)
	return math.Max(0, last+step), true
}

// Summary condenses a price series for display.
type Summary struct {
	Points    int
	Latest    float64
	Previous  float64
	Change    float64
	ChangePct float64
	HasChange bool
	Average   float64
	Min       float64
	Max       float64
	Projected float64
	Trend     Trend
}

// Summarize computes display figures over modal prices.
func Summarize(series PriceSeries, window int) Summary {
	if window <= 0 {
		window = DefaultWindow
	}
	values := ModalPrices(series)
	s := Summary{Points: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Latest = values[len(values)-1]
	s.Min, s.Max = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Average = sum / float64(len(values))

	if len(values) > 1 {
		s.Previous = values[len(values)-2]
		s.Change = s.Latest - s.Previous
		s.ChangePct, s.HasChange = PercentChange(s.Previous, s.Latest)
	}
	if s.HasChange {
		s.Trend = ClassifyTrend(s.ChangePct)
	}
	s.Projected, _ = Project(values, window)
	return s
}
