package fetcher

import (
	"context"

	"yfcollector/pkg/yahoo"

	"go.uber.org/zap"
)

// SeriesFetcher fetches the history of one symbol.
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol string, lookbackDays int) (yahoo.TimeSeries, bool)
}

// BatchFetcher fetches many symbols one at a time.
type BatchFetcher struct {
	fetcher SeriesFetcher
	logger  *zap.Logger
}

func NewBatchFetcher(fetcher SeriesFetcher, logger *zap.Logger) *BatchFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchFetcher{fetcher: fetcher, logger: logger}
}

// FetchAll fetches symbols sequentially in input order. A symbol whose fetch
// is absent is omitted; it never affects the others. Fetching stops early
// only when ctx is done.
func (b *BatchFetcher) FetchAll(ctx context.Context, symbols []string, lookbackDays int) yahoo.BatchResult {
	result := make(yahoo.BatchResult, len(symbols))
	var failed int

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			b.logger.Warn("batch interrupted", zap.Int("fetched", len(result)), zap.Error(err))
			break
		}

		series, ok := b.fetcher.Fetch(ctx, symbol, lookbackDays)
		if !ok {
			failed++
			continue
		}
		result[symbol] = series
	}

	b.logger.Info("batch fetch finished",
		zap.Int("requested", len(symbols)),
		zap.Int("fetched", len(result)),
		zap.Int("failed", failed),
	)
	return result
}
