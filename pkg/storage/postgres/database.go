package postgres

import (
	"database/sql"
	"fmt"

	"yfcollector/config"

	"github.com/lib/pq"
)

// CreateDatabase connects to the maintenance database of the server and
// creates cfg.DBName if it doesn't exist.
func CreateDatabase(cfg config.PostgresConfig, env string) error {
	target := cfg.DBName

	admin := cfg
	admin.DBName = "postgres"

	db, err := sql.Open("postgres", admin.DSN(env))
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	defer db.Close()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1);`
	if err := db.QueryRow(query, target).Scan(&exists); err != nil {
		return fmt.Errorf("check db exists failed: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(target)); err != nil {
		return fmt.Errorf("create db failed: %w", err)
	}

	return nil
}
