package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"yfcollector/config"
	"yfcollector/internal/yahoo/collector"
	"yfcollector/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (defaults to config/config.yaml)")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(configPath string) error {
	// viper config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run collector
	if err := collector.StartCollector(ctx, cfg, log); err != nil {
		log.Error("collector failed", zap.Error(err))
		return err
	}
	return nil
}
