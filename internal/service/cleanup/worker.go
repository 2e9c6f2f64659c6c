package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultInterval = time.Minute

// MatchStore is the part of the match registry the worker prunes.
type MatchStore interface {
	CleanupFinished(retention time.Duration, now time.Time) int
}

type Worker struct {
	Matches   MatchStore
	Retention time.Duration
	Interval  time.Duration
}

func NewWorker(matches MatchStore, retention time.Duration) *Worker {
	return &Worker{Matches: matches, Retention: retention, Interval: DefaultInterval}
}

// Start runs a cleanup immediately and then every Interval until ctx ends.
func (w *Worker) Start(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	w.runCleanup()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("component", "cleanup").Msg("background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	log.Info().Str("component", "cleanup").Dur("interval", interval).
		Dur("retention", w.Retention).Msg("background worker started")
}

func (w *Worker) runCleanup() int {
	removed := w.Matches.CleanupFinished(w.Retention, time.Now())
	if removed > 0 {
		log.Debug().Str("component", "cleanup").Int("removed", removed).Msg("pruned finished matches")
	}
	return removed
}
