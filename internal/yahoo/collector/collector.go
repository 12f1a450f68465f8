package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yfcollector/internal/yahoo/fetcher"
	"yfcollector/internal/yahoo/memorystore"
	"yfcollector/internal/yahoo/metrics"
	"yfcollector/internal/yahoo/snapshot"
	"yfcollector/pkg/yahoo"

	"go.uber.org/zap"
)

// Recorder persists fetched series.
type Recorder interface {
	SaveSeries(ctx context.Context, symbol string, series yahoo.TimeSeries) error
}

// Pruner drops persisted bars older than a cutoff day.
type Pruner interface {
	DeleteBarsBefore(ctx context.Context, before time.Time) error
}

// Publisher forwards summaries to the reporting component.
type Publisher interface {
	Publish(ctx context.Context, summaries []metrics.Summary) error
}

var ErrNoSymbols = errors.New("no symbols to collect")

// Collector performs one collection run: build the symbol universe, fetch
// every symbol sequentially, keep the result in memory, persist it and
// publish per-symbol summaries. Recorder and Publisher are optional.
type Collector struct {
	Loader       *snapshot.SymbolLoader
	Batch        *fetcher.BatchFetcher
	LookbackDays int

	Symbols *memorystore.MemorySymbolStore
	Series  *memorystore.MemorySeriesStore

	Recorder Recorder
	// RetentionDays prunes bars older than this many days after recording
	// when Recorder is also a Pruner. 0 keeps everything.
	RetentionDays int

	Publisher Publisher
	Logger    *zap.Logger
	Now       func() time.Time
}

// Run executes a single collection and returns the summaries it produced.
// Persistence and publishing failures are logged, never returned.
func (c *Collector) Run(ctx context.Context) ([]metrics.Summary, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Load symbol universe through the worker channel
	symbolCh := make(chan string, 100)
	loadErr := make(chan error, 1)
	go func() {
		loadErr <- c.Loader.LoadSymbols(ctx, symbolCh)
	}()

	c.Symbols.Reset()
	<-c.Symbols.StartWorker(symbolCh)
	if err := <-loadErr; err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}

	symbols := c.Symbols.GetAll()
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	result := c.Batch.FetchAll(ctx, symbols, c.LookbackDays)
	c.Series.PutBatch(result)

	if c.Recorder != nil {
		for _, symbol := range result.Symbols() {
			if err := c.Recorder.SaveSeries(ctx, symbol, result[symbol]); err != nil {
				logger.Warn("failed to persist series", zap.String("symbol", symbol), zap.Error(err))
				continue
			}
		}
		c.prune(ctx, logger)
	}

	summaries := metrics.SummarizeAll(result)
	for _, s := range summaries {
		logger.Info("collected symbol",
			zap.String("symbol", s.Symbol),
			zap.Int("bars", s.Bars),
			zap.Float64("change_pct", s.ChangePercent),
			zap.Float64("avg_volume", s.AverageVolume),
		)
	}

	if c.Publisher != nil {
		if err := c.Publisher.Publish(ctx, summaries); err != nil {
			logger.Warn("failed to publish summaries", zap.Error(err))
		}
	}

	logger.Info("collection finished",
		zap.Int("symbols", len(symbols)),
		zap.Int("collected", len(result)),
		zap.Int("stored_bars", c.Series.CountAll()),
	)
	return summaries, nil
}

func (c *Collector) prune(ctx context.Context, logger *zap.Logger) {
	pruner, ok := c.Recorder.(Pruner)
	if !ok || c.RetentionDays <= 0 {
		return
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	y, m, d := now().UTC().AddDate(0, 0, -c.RetentionDays).Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if err := pruner.DeleteBarsBefore(ctx, cutoff); err != nil {
		logger.Warn("failed to prune old bars", zap.Time("before", cutoff), zap.Error(err))
	}
}
