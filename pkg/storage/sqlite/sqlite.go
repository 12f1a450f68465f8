package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"yfcollector/pkg/yahoo"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store persists bars to a local SQLite file.
type Store struct {
	db       *sql.DB
	mu       sync.Mutex
	interval string
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInterval sets the interval label bars are written and read under.
// The default is "1d".
func WithInterval(interval string) Option {
	return func(s *Store) {
		if interval != "" {
			s.interval = interval
		}
	}
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(path string, logger *zap.Logger, options ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=3000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}

	s := &Store{db: db, interval: "1d", logger: logger}
	for _, option := range options {
		option(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite store opened", zap.String("path", path))
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_bars (
			symbol      TEXT    NOT NULL,
			interval    TEXT    NOT NULL,
			date        TEXT    NOT NULL,
			open        REAL    NOT NULL,
			high        REAL    NOT NULL,
			low         REAL    NOT NULL,
			close       REAL    NOT NULL,
			adj_close   REAL    NOT NULL,
			volume      INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, interval, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_bars_date ON price_bars(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveSeries writes every bar of series in one transaction, replacing bars
// already stored for the same symbol, interval and date.
func (s *Store) SaveSeries(ctx context.Context, symbol string, series yahoo.TimeSeries) error {
	if len(series) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_bars
		(symbol, interval, date, open, high, low, close, adj_close, volume, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, interval, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, adj_close=excluded.adj_close,
			volume=excluded.volume, recorded_at=excluded.recorded_at`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, bar := range series {
		if _, err := stmt.ExecContext(ctx,
			symbol, s.interval, bar.Day(), bar.Open, bar.High, bar.Low, bar.Close,
			bar.AdjustedClose, bar.Volume, now,
		); err != nil {
			return fmt.Errorf("insert %s %s: %w", symbol, bar.Day(), err)
		}
	}
	return tx.Commit()
}

// GetSeries returns every stored bar of symbol under the store's interval,
// oldest first.
func (s *Store) GetSeries(ctx context.Context, symbol string) (yahoo.TimeSeries, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, open, high, low, close, adj_close, volume
		FROM price_bars WHERE symbol = ? AND interval = ? ORDER BY date ASC`, symbol, s.interval)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	series := yahoo.TimeSeries{}
	for rows.Next() {
		var (
			day string
			bar yahoo.PriceBar
		)
		if err := rows.Scan(&day, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.AdjustedClose, &bar.Volume); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		bar.Date, err = time.Parse(time.DateOnly, day)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", day, err)
		}
		series = append(series, bar)
	}
	return series, rows.Err()
}

// Symbols lists the stored symbols in lexical order.
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM price_bars ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// DeleteBarsBefore removes bars of every symbol and interval dated before
// the given day.
func (s *Store) DeleteBarsBefore(ctx context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM price_bars WHERE date < ?`,
		before.UTC().Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("pruned old bars", zap.Int64("rows", n), zap.String("before", before.UTC().Format(time.DateOnly)))
	}
	return nil
}

func (s *Store) Close() error {
	s.logger.Info("closing sqlite store")
	return s.db.Close()
}
