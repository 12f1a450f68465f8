package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// PostgresConfig defines the configuration for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	// ParameterPrefix locates host, user and password in AWS SSM Parameter
	// Store when running in prod.
	ParameterPrefix string `mapstructure:"parameter_prefix"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN builds the connection string. In prod the credentials come from SSM.
func (cfg *PostgresConfig) DSN(env string) string {
	host, user, password := cfg.Host, cfg.User, cfg.Password
	if env == "prod" {
		host = getParameterStoreValue(cfg.ParameterPrefix+"host", true)
		user = getParameterStoreValue(cfg.ParameterPrefix+"user", true)
		password = getParameterStoreValue(cfg.ParameterPrefix+"password", true)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, cfg.Port, user, password, cfg.DBName, cfg.SSLMode,
	)

	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}

	return dsn
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
