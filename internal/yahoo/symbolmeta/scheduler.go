package symbolmeta

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefreshScheduler runs a collection job on a cron schedule. Runs never
// overlap: a tick that fires while the previous run is still busy is skipped.
type RefreshScheduler struct {
	cron   *cron.Cron
	run    func(context.Context)
	logger *zap.Logger
}

// NewRefreshScheduler registers run under spec (six fields, seconds first).
func NewRefreshScheduler(ctx context.Context, spec string, run func(context.Context), logger *zap.Logger) (*RefreshScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RefreshScheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		run:    run,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(spec, func() { s.runOnce(ctx) }); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	return s, nil
}

// Start runs the job once immediately, then starts the cron scheduler.
func (s *RefreshScheduler) Start(ctx context.Context) {
	s.runOnce(ctx)
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *RefreshScheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.run(ctx)
}
