package postgres

import (
	"context"
	"fmt"

	"yfcollector/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresClient struct {
	DB *gorm.DB

	// Interval labels the bars written by SaveSeries and read by GetSeries.
	Interval string
}

func NewClient(dsn string) (*PostgresClient, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresClient{DB: db, Interval: DailyInterval}, nil
}

// InitializeAndMigratePriceBarRecord connects to Postgres, optionally creates the DB, and runs AutoMigrate.
func InitializeAndMigratePriceBarRecord(cfg config.PostgresConfig, env string, createDB bool) (*PostgresClient, error) {
	if createDB {
		if err := CreateDatabase(cfg, env); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	client, err := NewClient(cfg.DSN(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := client.prepare(cfg); err != nil {
		return nil, err
	}

	return client, nil
}

// prepare sizes the pool and migrates the schema. The connection pool is
// closed when either step fails.
func (p *PostgresClient) prepare(cfg config.PostgresConfig) error {
	if err := p.configurePool(cfg); err != nil {
		_ = p.Close()
		return err
	}
	if err := p.AutoMigratePriceBarRecord(); err != nil {
		_ = p.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (p *PostgresClient) configurePool(cfg config.PostgresConfig) error {
	db, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

func (p *PostgresClient) AutoMigratePriceBarRecord() error {
	if err := p.DB.AutoMigrate(&PriceBarRecord{}); err != nil {
		return fmt.Errorf("auto-migrate price bar table: %w", err)
	}
	return nil
}

func (p *PostgresClient) IsHealthy(ctx context.Context) bool {
	db, err := p.DB.DB()
	if err != nil {
		return false
	}
	return db.PingContext(ctx) == nil
}

func (p *PostgresClient) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return db.Close()
}
