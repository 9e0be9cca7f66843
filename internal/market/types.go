package market

import (
	"slices"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// PriceRecord is one day's arrival prices at a market, in rupees per unit.
type PriceRecord struct {
	Date       string  `json:"date"`
	Market     string  `json:"market"`
	District   string  `json:"district,omitempty"`
	State      string  `json:"state,omitempty"`
	Variety    string  `json:"variety,omitempty"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	ModalPrice float64 `json:"modal_price"`
}

// ParsedDate returns the record date, or the zero time when it is malformed.
func (r PriceRecord) ParsedDate() time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}
	}
	return t
}

// PriceSeries is the price history for one commodity.
type PriceSeries struct {
	Commodity string        `json:"commodity"`
	Unit      string        `json:"unit"`
	Records   []PriceRecord `json:"records"`
}

// Sorted returns the records oldest first. Records with equal dates keep
// their server order.
func (s PriceSeries) Sorted() []PriceRecord {
	out := slices.Clone(s.Records)
	slices.SortStableFunc(out, func(a, b PriceRecord) int {
		return a.ParsedDate().Compare(b.ParsedDate())
	})
	return out
}

// Latest returns the newest record.
func (s PriceSeries) Latest() (PriceRecord, bool) {
	sorted := s.Sorted()
	if len(sorted) == 0 {
		return PriceRecord{}, false
	}
	return sorted[len(sorted)-1], true
}

// Clone returns a deep copy.
func (s PriceSeries) Clone() PriceSeries {
	s.Records = slices.Clone(s.Records)
	return s
}

// Commodity is an entry in the commodity catalogue.
type Commodity struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type commodityListResponse struct {
	Items []Commodity `json:"items"`
}
