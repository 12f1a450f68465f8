// Package metrics derives simple statistics from a fetched price series.
package metrics

import (
	"time"

	"yfcollector/pkg/yahoo"
)

// ChangePercentage is the move from the first bar's open to the last bar's
// close, in percent. It is 0 for an empty series or a zero first open.
func ChangePercentage(series yahoo.TimeSeries) float64 {
	first, ok := series.First()
	if !ok || first.Open == 0 {
		return 0
	}
	last, _ := series.Last()
	return (last.Close - first.Open) / first.Open * 100
}

// AverageVolume is the arithmetic mean of the bar volumes, 0 when empty.
func AverageVolume(series yahoo.TimeSeries) float64 {
	if len(series) == 0 {
		return 0
	}
	var total float64
	for _, bar := range series {
		total += float64(bar.Volume)
	}
	return total / float64(len(series))
}

// Summary is the per-symbol view handed to reporting.
type Summary struct {
	Symbol        string          `json:"symbol"`
	Bars          int             `json:"bars"`
	From          time.Time       `json:"from,omitzero"`
	To            time.Time       `json:"to,omitzero"`
	ChangePercent float64         `json:"change_pct"`
	AverageVolume float64         `json:"avg_volume"`
	Latest        *yahoo.PriceBar `json:"latest,omitempty"`
}

func Summarize(symbol string, series yahoo.TimeSeries) Summary {
	s := Summary{
		Symbol:        symbol,
		Bars:          len(series),
		ChangePercent: ChangePercentage(series),
		AverageVolume: AverageVolume(series),
	}
	if first, ok := series.First(); ok {
		s.From = first.Date
	}
	if last, ok := series.Last(); ok {
		s.To = last.Date
		s.Latest = &last
	}
	return s
}

// SummarizeAll summarizes every entry of a batch in symbol order.
func SummarizeAll(result yahoo.BatchResult) []Summary {
	out := make([]Summary, 0, len(result))
	for _, sym := range result.Symbols() {
		out = append(out, Summarize(sym, result[sym]))
	}
	return out
}
