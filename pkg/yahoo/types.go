package yahoo

import (
	"sort"
	"time"
)

// PriceBar is one trading day observation. It is only built when open, high,
// low, close and volume are all present for its index.
type PriceBar struct {
	Date          time.Time `json:"date"` // UTC calendar date (midnight)
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	Volume        int64     `json:"volume"`
	AdjustedClose float64   `json:"adjclose"` // equals Close when the source omits it
}

// Day formats the bar date as YYYY-MM-DD.
func (b PriceBar) Day() string {
	return b.Date.Format(time.DateOnly)
}

// TimeSeries is an ordered sequence of bars in source (ascending) order.
type TimeSeries []PriceBar

// First returns the oldest bar.
func (s TimeSeries) First() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[0], true
}

// Last returns the most recent bar.
func (s TimeSeries) Last() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}

// BatchResult maps a symbol to its fetched series. Symbols whose fetch
// failed are absent.
type BatchResult map[string]TimeSeries

// Symbols returns the keys in lexical order.
func (r BatchResult) Symbols() []string {
	out := make([]string, 0, len(r))
	for sym := range r {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// utcDate converts epoch seconds to the UTC calendar date.
func utcDate(epoch int64) time.Time {
	y, m, d := time.Unix(epoch, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
