package session

import (
	"context"
	"log/slog"
	"time"
)

// Purger is implemented by stores that can drop stale entries in bulk.
// The Redis variant has no purger; its keys are few and cheap to keep.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Reaper periodically purges expired entries from a store. It is optional
// hygiene only: the store's lazy read-time check decides validity whether or
// not the reaper ever runs.
type Reaper struct {
	purger   Purger
	interval time.Duration
	logger   *slog.Logger
}

// NewReaper creates a reaper over the given purger.
func NewReaper(purger Purger, interval time.Duration, logger *slog.Logger) *Reaper {
	return &Reaper{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, purging on every tick until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := r.purger.PurgeExpired(ctx)
			if err != nil {
				r.logger.Warn("Failed to purge expired sessions", slog.Any("error", err))

				continue
			}
			if removed > 0 {
				r.logger.Debug("Purged expired sessions", slog.Int("removed", removed))
			}
		}
	}
}
