package quiz

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reaper periodically deletes quizzes stuck in "creating". A dispatched
// generation that fails before publishing leaves its quiz orphaned; the
// sweep is the only cleanup path for those.
type Reaper struct {
	store    Store
	interval time.Duration
	maxAge   time.Duration
	log      zerolog.Logger
}

func NewReaper(store Store, interval, maxAge time.Duration, log zerolog.Logger) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}
	return &Reaper{store: store, interval: interval, maxAge: maxAge, log: log}
}

// Run sweeps on a ticker until ctx is done.
func (r *Reaper) Run(ctx context.Context) {
	r.log.Info().Dur("interval", r.interval).Dur("max_age", r.maxAge).Msg("orphan reaper started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("orphan reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep removes quizzes older than maxAge that never left "creating".
func (r *Reaper) Sweep(ctx context.Context) {
	ids, err := r.store.DeleteStaleCreating(ctx, time.Now().Add(-r.maxAge))
	if err != nil {
		r.log.Error().Err(err).Msg("orphan sweep failed")
		return
	}
	for _, id := range ids {
		r.log.Warn().Int64("quiz_id", id).Msg("deleted orphaned quiz stuck in creating")
	}
}
