package postgres

import (
	"context"
	"time"

	"yfcollector/pkg/yahoo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyInterval is the interval label stored for daily bars.
const DailyInterval = "1d"

// UpsertSeries stores every bar of series under interval, replacing bars
// already stored for the same symbol, interval and date.
func (p *PostgresClient) UpsertSeries(ctx context.Context, symbol, interval string, series yahoo.TimeSeries) error {
	if len(series) == 0 {
		return nil
	}

	records := make([]PriceBarRecord, 0, len(series))
	for _, bar := range series {
		records = append(records, *ToPriceBarRecord(symbol, interval, bar))
	}

	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "symbol"},
				{Name: "interval"},
				{Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"open", "high", "low", "close", "adj_close", "volume", "updated_at",
			}),
		}).CreateInBatches(records, 500).Error
	})
}

// SaveSeries upserts series under the client's interval.
func (p *PostgresClient) SaveSeries(ctx context.Context, symbol string, series yahoo.TimeSeries) error {
	return p.UpsertSeries(ctx, symbol, p.Interval, series)
}

// GetSeries returns the stored bars of symbol under the client's interval
// within [from, to], oldest first.
func (p *PostgresClient) GetSeries(ctx context.Context, symbol string, from, to time.Time) (yahoo.TimeSeries, error) {
	var records []PriceBarRecord
	err := p.DB.WithContext(ctx).
		Where(`symbol = ? AND "interval" = ? AND date BETWEEN ? AND ?`, symbol, p.Interval, from, to).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	series := make(yahoo.TimeSeries, 0, len(records))
	for _, r := range records {
		series = append(series, ToPriceBar(r))
	}
	return series, nil
}

// DeleteBarsBefore removes bars of every symbol and interval dated before
// the given day.
func (p *PostgresClient) DeleteBarsBefore(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("date < ?", before).
		Delete(&PriceBarRecord{}).Error
}

// ToPriceBarRecord converts a bar and its symbol into a record for DB insertion.
func ToPriceBarRecord(symbol, interval string, bar yahoo.PriceBar) *PriceBarRecord {
	return &PriceBarRecord{
		Symbol:   symbol,
		Interval: interval,
		Date:     bar.Date,
		Open:     bar.Open,
		High:     bar.High,
		Low:      bar.Low,
		Close:    bar.Close,
		AdjClose: bar.AdjustedClose,
		Volume:   bar.Volume,
	}
}

// ToPriceBar converts a stored record back into a bar.
func ToPriceBar(r PriceBarRecord) yahoo.PriceBar {
	y, m, d := r.Date.Date()
	return yahoo.PriceBar{
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Open:          r.Open,
		High:          r.High,
		Low:           r.Low,
		Close:         r.Close,
		Volume:        r.Volume,
		AdjustedClose: r.AdjClose,
	}
}
