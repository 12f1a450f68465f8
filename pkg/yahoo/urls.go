package yahoo

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// HistoricalURL builds the chart endpoint for one symbol over [start, end].
func HistoricalURL(baseURL, symbol string, start, end time.Time, interval Interval) string {
	return fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(symbol),
		start.Unix(),
		end.Unix(),
		interval,
	)
}

// TrendingURL builds the US trending tickers endpoint.
func TrendingURL(baseURL string, count int) string {
	return fmt.Sprintf("%s/v1/finance/trending/US?count=%d", strings.TrimRight(baseURL, "/"), count)
}
