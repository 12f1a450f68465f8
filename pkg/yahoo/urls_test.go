package yahoo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yfcollector/pkg/yahoo"
)

func TestHistoricalURL(t *testing.T) {
	end := time.Unix(1710000000, 0)
	start := end.Add(-30 * 24 * time.Hour)

	got := yahoo.HistoricalURL("https://query1.finance.yahoo.com/", "AAPL", start, end, yahoo.Interval1Day)
	assert.Equal(t,
		"https://query1.finance.yahoo.com/v8/finance/chart/AAPL?period1=1707408000&period2=1710000000&interval=1d",
		got)

	// index tickers carry a caret
	assert.Contains(t, yahoo.HistoricalURL(yahoo.DefaultBaseURL, "^GSPC", start, end, yahoo.Interval1Day), "/chart/%5EGSPC?")
}

func TestTrendingURL(t *testing.T) {
	assert.Equal(t,
		"https://query1.finance.yahoo.com/v1/finance/trending/US?count=20",
		yahoo.TrendingURL(yahoo.DefaultBaseURL, yahoo.DefaultTrendingCount))
}

func TestParseInterval(t *testing.T) {
	meta, err := yahoo.ParseInterval("1d")
	require.NoError(t, err)
	assert.Equal(t, 1440, meta.Minutes)
	assert.True(t, yahoo.Interval1Week.IsValid())

	_, err = yahoo.ParseInterval("2h")
	assert.Error(t, err)
}
