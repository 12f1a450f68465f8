package collector

import (
	"context"
	"fmt"

	"yfcollector/config"
	"yfcollector/internal/yahoo/fetcher"
	"yfcollector/internal/yahoo/memorystore"
	"yfcollector/internal/yahoo/snapshot"
	"yfcollector/internal/yahoo/stream"
	"yfcollector/internal/yahoo/symbolmeta"
	"yfcollector/pkg/storage/postgres"
	"yfcollector/pkg/storage/sqlite"
	"yfcollector/pkg/yahoo"

	"go.uber.org/zap"
)

// StartCollector wires the pipeline from configuration and runs it, either
// once or on the configured cron schedule until ctx is done.
func StartCollector(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Transport lives for the whole session
	restClient := yahoo.NewRESTClient(cfg.Yahoo.REST.BaseURL, cfg.Yahoo.REST.Timeout,
		yahoo.WithUserAgent(cfg.Yahoo.REST.UserAgent))
	defer restClient.Close()

	interval, err := yahoo.ParseInterval(cfg.Yahoo.Fetch.Interval)
	if err != nil {
		return err
	}
	symbolFetcher := fetcher.NewSymbolFetcher(restClient, restClient.BaseURL(), logger,
		fetcher.WithInterval(yahoo.Interval(interval.APIValue)))

	col := &Collector{
		Loader: &snapshot.SymbolLoader{
			Symbols:         cfg.Yahoo.Fetch.Symbols,
			IncludeTrending: cfg.Yahoo.Fetch.IncludeTrending,
			TrendingCount:   cfg.Yahoo.Fetch.TrendingCount,
			Trending:        symbolFetcher,
			Logger:          logger,
		},
		Batch:         fetcher.NewBatchFetcher(symbolFetcher, logger),
		LookbackDays:  cfg.Yahoo.Fetch.LookbackDays,
		Symbols:       memorystore.NewSymbolStore(),
		Series:        memorystore.NewSeriesStore(),
		RetentionDays: cfg.Storage.RetentionDays,
		Logger:        logger,
	}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		postgresClient, err := postgres.InitializeAndMigratePriceBarRecord(cfg.Postgres, cfg.Environment, true)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer postgresClient.Close()
		postgresClient.Interval = interval.DBValue
		col.Recorder = postgresClient
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath, logger, sqlite.WithInterval(interval.DBValue))
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		defer store.Close()
		col.Recorder = store
	}

	if cfg.Stream.URL != "" {
		publisher := stream.NewPublisher(cfg.Stream.URL, cfg.Stream.Timeout, logger)
		defer publisher.Close()
		col.Publisher = publisher
	}

	if cfg.Schedule.Cron == "" {
		_, err := col.Run(ctx)
		return err
	}

	scheduler, err := symbolmeta.NewRefreshScheduler(ctx, cfg.Schedule.Cron, func(ctx context.Context) {
		if _, err := col.Run(ctx); err != nil {
			logger.Error("collection failed", zap.Error(err))
		}
	}, logger)
	if err != nil {
		return err
	}

	scheduler.Start(ctx)
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
