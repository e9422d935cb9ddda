package sync

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// MinInterval is the floor for the cycle interval; anything shorter would
// hot-loop against the remote service.
const MinInterval = 5 * time.Second

// Scheduler drives the engine on a fixed interval. Cycles run strictly one
// at a time: the next tick is not considered until the previous cycle has
// fully completed. A failed or panicking cycle is logged and never stops the
// loop; only context cancellation does, and that is a normal stop, not an
// error.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	log      zerolog.Logger
}

// NewScheduler creates a scheduler running one cycle per interval, clamped
// to MinInterval.
func NewScheduler(engine *Engine, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval < MinInterval {
		log.Warn().Dur("requested", interval).Dur("clamped", MinInterval).Msg("cycle interval below minimum")
		interval = MinInterval
	}
	return &Scheduler{engine: engine, interval: interval, log: log}
}

// Run executes cycles until ctx is cancelled. The first cycle starts
// immediately; each subsequent one waits for the next tick.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("reconciliation scheduler started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx)
		select {
		case <-ctx.Done():
			s.log.Info().Msg("reconciliation scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// runOnce executes a single cycle behind the loop's failure boundary.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("reconciliation cycle panicked")
		}
	}()

	if ctx.Err() != nil {
		return
	}

	_, err := s.engine.RunCycle(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.log.Info().Msg("reconciliation cycle interrupted by shutdown")
	default:
		s.log.Warn().Err(err).Msg("reconciliation cycle failed; retrying next tick")
	}
}
