// Package refresher re-fetches the cached collections on a schedule. Sale
// recording deliberately leaves the cache stale (stock and sales move on the
// backend), so a periodic refetch is how the cache converges.
package refresher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bikedesk/internal/config"
	"bikedesk/internal/store"
)

// Refresher manages the periodic collection refresh.
type Refresher struct {
	cron   *cron.Cron
	store  *store.Store
	cfg    config.RefreshConfig
	logger *zap.Logger
}

// New creates a refresher around the store.
func New(cfg config.RefreshConfig, st *store.Store, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		cron:   cron.New(),
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the refresh job and starts the cron loop. Disabled config
// makes this a no-op.
func (r *Refresher) Start() {
	if !r.cfg.Enabled {
		r.logger.Info("background refresh disabled")
		return
	}

	if _, err := r.cron.AddFunc(r.cfg.CronSchedule, r.run); err != nil {
		r.logger.Error("failed to schedule collection refresh", zap.Error(err))
		return
	}

	r.logger.Info("background refresh scheduled", zap.String("schedule", r.cfg.CronSchedule))
	r.cron.Start()
}

// Stop stops the cron loop.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) run() {
	if r.store.State() != store.StateAuthenticated {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	r.store.Refresh(ctx)
	r.logger.Debug("collections refreshed")
}
