package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yfcollector/pkg/yahoo"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestChangePercentage(t *testing.T) {
	series := yahoo.TimeSeries{
		{Date: day(4), Open: 100, Close: 103, Volume: 100},
		{Date: day(5), Open: 104, Close: 99, Volume: 200},
		{Date: day(6), Open: 98, Close: 110, Volume: 300},
	}
	assert.InDelta(t, 10.0, ChangePercentage(series), 1e-9)

	// single bar: open to close of the same day
	assert.InDelta(t, -5.0, ChangePercentage(yahoo.TimeSeries{{Open: 100, Close: 95}}), 1e-9)
}

func TestChangePercentage_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, ChangePercentage(nil))
	assert.Equal(t, 0.0, ChangePercentage(yahoo.TimeSeries{}))
	assert.Equal(t, 0.0, ChangePercentage(yahoo.TimeSeries{{Open: 0, Close: 5}}))
}

func TestAverageVolume(t *testing.T) {
	series := yahoo.TimeSeries{{Volume: 100}, {Volume: 200}, {Volume: 300}}
	assert.Equal(t, 200.0, AverageVolume(series))
	assert.Equal(t, 0.0, AverageVolume(nil))
}

func TestSummarize(t *testing.T) {
	series := yahoo.TimeSeries{
		{Date: day(4), Open: 100, Close: 105, Volume: 100},
		{Date: day(5), Open: 105, Close: 110, Volume: 300},
	}

	s := Summarize("AAPL", series)
	assert.Equal(t, "AAPL", s.Symbol)
	assert.Equal(t, 2, s.Bars)
	assert.Equal(t, day(4), s.From)
	assert.Equal(t, day(5), s.To)
	assert.InDelta(t, 10.0, s.ChangePercent, 1e-9)
	assert.Equal(t, 200.0, s.AverageVolume)
	require.NotNil(t, s.Latest)
	assert.Equal(t, 110.0, s.Latest.Close)

	empty := Summarize("ZZZ", yahoo.TimeSeries{})
	assert.Zero(t, empty.Bars)
	assert.Nil(t, empty.Latest)
	assert.True(t, empty.From.IsZero())
}

func TestSummarizeAll(t *testing.T) {
	out := SummarizeAll(yahoo.BatchResult{
		"MSFT": {{Open: 1, Close: 2, Volume: 10}},
		"AAPL": {},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "AAPL", out[0].Symbol)
	assert.Equal(t, "MSFT", out[1].Symbol)
	assert.InDelta(t, 100.0, out[1].ChangePercent, 1e-9)
}
