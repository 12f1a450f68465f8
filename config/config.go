package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"yfcollector/pkg/yahoo"

	"github.com/spf13/viper"
)

const (
	StorageNone     = "none"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Environment string         `mapstructure:"environment"` // "dev" or "prod"
	Yahoo       YahooConfig    `mapstructure:"yahoo"`
	Schedule    ScheduleConfig `mapstructure:"schedule"`
	Stream      StreamConfig   `mapstructure:"stream"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Log         LogConfig      `mapstructure:"log"`
	Postgres    PostgresConfig `mapstructure:"postgres"`
}

type YahooConfig struct {
	REST  RESTConfig  `mapstructure:"rest"`
	Fetch FetchConfig `mapstructure:"fetch"`
}

type RESTConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type FetchConfig struct {
	Symbols         []string `mapstructure:"symbols"`
	Interval        string   `mapstructure:"interval"` // "1d", "5d", "1wk", "1mo" or "3mo"
	LookbackDays    int      `mapstructure:"lookback_days"`
	IncludeTrending bool     `mapstructure:"include_trending"`
	TrendingCount   int      `mapstructure:"trending_count"`
}

// ScheduleConfig holds the refresh schedule. An empty Cron runs a single
// collection and exits.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"` // six fields, seconds first
}

// StreamConfig points at the reporting websocket endpoint (optional).
type StreamConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver"` // "none", "postgres" or "sqlite"
	SQLitePath    string `mapstructure:"sqlite_path"`
	RetentionDays int    `mapstructure:"retention_days"` // 0 keeps every bar
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("yahoo.rest.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.rest.timeout", 10*time.Second)
	v.SetDefault("yahoo.rest.user_agent", "")
	v.SetDefault("yahoo.fetch.symbols", []string{})
	v.SetDefault("yahoo.fetch.interval", string(yahoo.Interval1Day))
	v.SetDefault("yahoo.fetch.lookback_days", 30)
	v.SetDefault("yahoo.fetch.include_trending", false)
	v.SetDefault("yahoo.fetch.trending_count", 20)

	v.SetDefault("schedule.cron", "")

	v.SetDefault("stream.url", "")
	v.SetDefault("stream.timeout", 5*time.Second)

	v.SetDefault("storage.driver", StorageNone)
	v.SetDefault("storage.sqlite_path", "data/yfcollector.db")
	v.SetDefault("storage.retention_days", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "yfcollector")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.parameter_prefix", "/yfcollector/postgres/")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
}

// Load loads application configuration using Viper.
// It reads from path (or config.yaml next to the binary when path is empty)
// and overrides with environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")

		ex, _ := os.Executable()
		if strings.Contains(ex, "go-build") {
			pwd, _ := os.Getwd()
			v.AddConfigPath(filepath.Join(pwd, "../../config"))
		} else {
			v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
		}
		v.AddConfigPath(".")
	}

	// Support environment variables with dot notation (e.g., YAHOO_FETCH_SYMBOLS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the collector cannot run without.
func (c *Config) Validate() error {
	if c.Yahoo.REST.BaseURL == "" {
		return fmt.Errorf("yahoo.rest.base_url is required")
	}
	if _, err := yahoo.ParseInterval(c.Yahoo.Fetch.Interval); err != nil {
		return fmt.Errorf("yahoo.fetch.interval: %w", err)
	}
	if c.Yahoo.Fetch.LookbackDays < 1 {
		return fmt.Errorf("yahoo.fetch.lookback_days must be at least 1, got %d", c.Yahoo.Fetch.LookbackDays)
	}
	if c.Yahoo.Fetch.TrendingCount < 0 {
		return fmt.Errorf("yahoo.fetch.trending_count must not be negative")
	}
	if len(c.Yahoo.Fetch.Symbols) == 0 && !c.Yahoo.Fetch.IncludeTrending {
		return fmt.Errorf("no symbols configured and trending disabled")
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("storage.retention_days must not be negative")
	}
	switch c.Storage.Driver {
	case StorageNone, StoragePostgres:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}
