package fetcher

import (
	"context"
	"errors"
	"time"

	"yfcollector/pkg/yahoo"

	"go.uber.org/zap"
)

// RawFetcher performs a blocking GET and returns the response body.
//
//go:generate mockgen -package=fetcher_test -destination=mock_raw_fetcher_test.go -source=fetcher.go RawFetcher
type RawFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// SymbolFetcher retrieves and parses the price history of single symbols.
// Every failure is absorbed and reported as an absent result.
type SymbolFetcher struct {
	raw      RawFetcher
	baseURL  string
	interval yahoo.Interval
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a SymbolFetcher.
type Option func(*SymbolFetcher)

// WithClock overrides the time source used for the request window.
func WithClock(now func() time.Time) Option {
	return func(f *SymbolFetcher) {
		f.now = now
	}
}

// WithInterval overrides the daily sampling interval.
func WithInterval(interval yahoo.Interval) Option {
	return func(f *SymbolFetcher) {
		if interval.IsValid() {
			f.interval = interval
		}
	}
}

func NewSymbolFetcher(raw RawFetcher, baseURL string, logger *zap.Logger, options ...Option) *SymbolFetcher {
	if baseURL == "" {
		baseURL = yahoo.DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &SymbolFetcher{
		raw:      raw,
		baseURL:  baseURL,
		interval: yahoo.Interval1Day,
		now:      time.Now,
		logger:   logger,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Fetch returns the series of symbol over the last lookbackDays days.
// ok is false when the transport failed or the body was not JSON; a
// well-formed but empty or structurally invalid document yields an empty
// series with ok true.
func (f *SymbolFetcher) Fetch(ctx context.Context, symbol string, lookbackDays int) (series yahoo.TimeSeries, ok bool) {
	if symbol == "" {
		f.logger.Warn("skipping empty symbol")
		return nil, false
	}

	end := f.now()
	start := end.Add(-time.Duration(lookbackDays) * 24 * time.Hour)
	endpoint := yahoo.HistoricalURL(f.baseURL, symbol, start, end, f.interval)

	body, ok := f.get(ctx, endpoint, symbol)
	if !ok {
		return nil, false
	}
	if len(body) == 0 {
		f.logger.Warn("empty chart response", zap.String("symbol", symbol))
		return nil, false
	}

	doc, err := yahoo.Decode(body)
	if err != nil {
		f.logger.Warn("failed to decode chart", zap.String("symbol", symbol), zap.Error(err))
		return nil, false
	}

	series, err = yahoo.ParseHistoricalStrict(doc)
	if err != nil {
		f.logger.Debug("chart rejected", zap.String("symbol", symbol), zap.Error(err))
	}
	return series, true
}

// FetchLatest returns the most recent bar within a short lookback window.
func (f *SymbolFetcher) FetchLatest(ctx context.Context, symbol string) (yahoo.PriceBar, bool) {
	series, ok := f.Fetch(ctx, symbol, yahoo.LatestLookbackDays)
	if !ok {
		return yahoo.PriceBar{}, false
	}
	return series.Last()
}

// FetchTrending returns up to limit trending US tickers, or an empty list on
// any failure.
func (f *SymbolFetcher) FetchTrending(ctx context.Context, limit int) []string {
	body, ok := f.get(ctx, yahoo.TrendingURL(f.baseURL, limit), "")
	if !ok {
		return []string{}
	}
	doc, err := yahoo.Decode(body)
	if err != nil {
		f.logger.Warn("failed to decode trending", zap.Error(err))
		return []string{}
	}
	return yahoo.ParseTrending(doc)
}

// get performs the raw request. A non-2xx reply that still carries a body is
// handed on: Yahoo answers unknown symbols with a 404 JSON error document.
func (f *SymbolFetcher) get(ctx context.Context, endpoint, symbol string) ([]byte, bool) {
	body, err := f.raw.Get(ctx, endpoint)
	if err == nil {
		return body, true
	}
	if errors.Is(err, yahoo.ErrUnexpectedStatus) && len(body) > 0 {
		f.logger.Debug("non-2xx response, decoding body", zap.String("symbol", symbol), zap.Error(err))
		return body, true
	}
	f.logger.Warn("request failed", zap.String("symbol", symbol), zap.String("url", endpoint), zap.Error(err))
	return nil, false
}
