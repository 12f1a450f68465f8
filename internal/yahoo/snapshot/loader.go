package snapshot

import (
	"context"

	"go.uber.org/zap"
)

// TrendingFetcher returns the current trending tickers.
type TrendingFetcher interface {
	FetchTrending(ctx context.Context, limit int) []string
}

// SymbolLoader assembles the symbol universe of a collection run: the
// configured symbols first, then the trending list when enabled.
type SymbolLoader struct {
	Symbols         []string
	IncludeTrending bool
	TrendingCount   int
	Trending        TrendingFetcher
	Logger          *zap.Logger
}

// LoadSymbols streams the universe into ch and closes it. Trending failures
// only shrink the universe.
func (l *SymbolLoader) LoadSymbols(ctx context.Context, ch chan<- string) error {
	defer close(ch) // Ensure downstream consumers can exit cleanly

	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	symbols := make([]string, 0, len(l.Symbols)+l.TrendingCount)
	symbols = append(symbols, l.Symbols...)

	if l.IncludeTrending && l.Trending != nil && l.TrendingCount > 0 {
		trending := l.Trending.FetchTrending(ctx, l.TrendingCount)
		logger.Info("loaded trending symbols", zap.Int("count", len(trending)))
		symbols = append(symbols, trending...)
	}
	logger.Info("loaded symbols", zap.Int("count", len(symbols)))

	for _, symbol := range symbols {
		select {
		case ch <- symbol:
		case <-ctx.Done():
			logger.Warn("symbol streaming interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		}
	}

	return nil
}
