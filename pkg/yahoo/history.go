package yahoo

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// quoteColumns holds the parallel OHLCV arrays of one chart result.
type quoteColumns struct {
	open, high, low, close, volume []gjson.Result
}

// ParseHistorical converts a decoded chart document into a TimeSeries.
// It never fails: a structurally invalid document yields an empty series.
func ParseHistorical(doc gjson.Result) TimeSeries {
	series, _ := ParseHistoricalStrict(doc)
	return series
}

// ParseHistoricalStrict is ParseHistorical that also reports why a document
// was rejected. The returned series is always non-nil.
func ParseHistoricalStrict(doc gjson.Result) (TimeSeries, error) {
	results := doc.Get("chart.result")
	if !results.IsArray() || len(results.Array()) == 0 {
		if desc := doc.Get("chart.error.description"); desc.Type == gjson.String {
			return TimeSeries{}, fmt.Errorf("%w: %s", ErrNoResult, desc.Str)
		}
		return TimeSeries{}, ErrNoResult
	}
	entry := results.Array()[0]

	timestamps := entry.Get("timestamp")
	if !timestamps.IsArray() {
		return TimeSeries{}, fmt.Errorf("%w: timestamp", ErrMissingField)
	}
	indicators := entry.Get("indicators")
	if !indicators.IsObject() {
		return TimeSeries{}, fmt.Errorf("%w: indicators", ErrMissingField)
	}
	quote := indicators.Get("quote.0")
	if !quote.IsObject() {
		return TimeSeries{}, fmt.Errorf("%w: indicators.quote", ErrMissingField)
	}

	var cols quoteColumns
	for _, c := range []struct {
		name string
		dst  *[]gjson.Result
	}{
		{"open", &cols.open},
		{"high", &cols.high},
		{"low", &cols.low},
		{"close", &cols.close},
		{"volume", &cols.volume},
	} {
		arr := quote.Get(c.name)
		if !arr.IsArray() {
			return TimeSeries{}, fmt.Errorf("%w: indicators.quote.%s", ErrMissingField, c.name)
		}
		*c.dst = arr.Array()
	}

	// adjclose is optional; a missing or short array falls back to close per index
	var adjclose []gjson.Result
	if arr := indicators.Get("adjclose.0.adjclose"); arr.IsArray() {
		adjclose = arr.Array()
	}

	ts := timestamps.Array()
	series := make(TimeSeries, 0, len(ts))
	for i, t := range ts {
		bar, ok := barAt(i, t, cols, adjclose)
		if !ok {
			continue // null or malformed field at this index (e.g. market holiday)
		}
		series = append(series, bar)
	}
	return series, nil
}

// barAt builds the bar for index i, or reports false when any required field
// is null, missing or not a number.
func barAt(i int, ts gjson.Result, cols quoteColumns, adjclose []gjson.Result) (PriceBar, bool) {
	if ts.Type != gjson.Number {
		return PriceBar{}, false
	}
	open, ok := numberAt(cols.open, i)
	if !ok {
		return PriceBar{}, false
	}
	high, ok := numberAt(cols.high, i)
	if !ok {
		return PriceBar{}, false
	}
	low, ok := numberAt(cols.low, i)
	if !ok {
		return PriceBar{}, false
	}
	closeVal, ok := numberAt(cols.close, i)
	if !ok {
		return PriceBar{}, false
	}
	volume, ok := numberAt(cols.volume, i)
	if !ok || volume.Num < 0 {
		return PriceBar{}, false
	}

	adj := closeVal.Num
	if v, ok := numberAt(adjclose, i); ok {
		adj = v.Num
	}

	return PriceBar{
		Date:          utcDate(ts.Int()),
		Open:          open.Num,
		High:          high.Num,
		Low:           low.Num,
		Close:         closeVal.Num,
		Volume:        volume.Int(),
		AdjustedClose: adj,
	}, true
}

// numberAt returns arr[i] when it exists and is a JSON number.
func numberAt(arr []gjson.Result, i int) (gjson.Result, bool) {
	if i >= len(arr) || arr[i].Type != gjson.Number {
		return gjson.Result{}, false
	}
	return arr[i], true
}
