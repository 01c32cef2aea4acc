// Package heartbeat emits a periodic liveness record to the log. It is
// the long-running payload of the service: attached diagnostic
// sessions see one record per interval for as long as the process
// lives.
package heartbeat

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"selfsvc/internal/logger"
)

// Beater runs the heartbeat loop.
type Beater struct {
	interval time.Duration
	clk      clock.Clock
	log      zerolog.Logger
}

// New creates a heartbeat with the given interval.
func New(interval time.Duration) *Beater {
	return &Beater{
		interval: interval,
		clk:      clock.New(),
		log:      logger.WithComponent("heartbeat"),
	}
}

// Run emits one record per interval until ctx is cancelled. It always
// returns nil; cancellation is the only way the loop ends.
func (b *Beater) Run(ctx context.Context) error {
	b.log.Info().Dur("interval", b.interval).Msg("Heartbeat started")

	ticker := b.clk.Ticker(b.interval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Int("beats", seq).Msg("Heartbeat stopped")
			return nil
		case <-ticker.C:
			seq++
			b.log.Info().Int("seq", seq).Msg("heartbeat")
		}
	}
}
