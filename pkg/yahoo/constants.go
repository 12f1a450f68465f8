package yahoo

import "fmt"

const (
	// DefaultBaseURL is the public Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultUserAgent mimics a desktop browser; the API rejects bare clients.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	DefaultLookbackDays  = 30
	DefaultTrendingCount = 20

	// LatestLookbackDays bounds the window used to look up the most recent bar.
	LatestLookbackDays = 2
)

// Interval is the sampling interval used for chart requests
type Interval string

// IntervalMeta holds API value and DB value for a chart interval
type IntervalMeta struct {
	APIValue string
	DBValue  string
	Minutes  int
}

const (
	Interval1Day   Interval = "1d"
	Interval5Day   Interval = "5d"
	Interval1Week  Interval = "1wk"
	Interval1Month Interval = "1mo"
	Interval3Month Interval = "3mo"
)

var validIntervals = map[Interval]IntervalMeta{
	Interval1Day:   {APIValue: "1d", DBValue: "1d", Minutes: 1440},    // 24*60
	Interval5Day:   {APIValue: "5d", DBValue: "5d", Minutes: 7200},    // 5*24*60
	Interval1Week:  {APIValue: "1wk", DBValue: "1w", Minutes: 10080},  // 7*24*60
	Interval1Month: {APIValue: "1mo", DBValue: "1M", Minutes: 43200},  // 30*24*60
	Interval3Month: {APIValue: "3mo", DBValue: "3M", Minutes: 129600}, // 90*24*60
}

// IsValid checks if the Interval is a valid predefined interval
func (i Interval) IsValid() bool {
	_, ok := validIntervals[i]
	return ok
}

// ParseInterval parses a string into a valid IntervalMeta
func ParseInterval(s string) (IntervalMeta, error) {
	meta, ok := validIntervals[Interval(s)]
	if !ok {
		return IntervalMeta{}, fmt.Errorf("invalid interval: %s", s)
	}
	return meta, nil
}
