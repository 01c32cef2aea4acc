//go:build !windows
// +build !windows

package runner

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"selfsvc/internal/logger"
)

type unixRunner struct {
	name    string
	payload Payload

	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
}

// New creates the runner for this platform. The name is carried for
// symmetry with the Windows runner; signal handling does not need it.
func New(name string, payload Payload) Runner {
	return &unixRunner{name: name, payload: payload}
}

// Run executes the payload until it returns or a termination signal
// arrives. systemd stops a unit with SIGTERM, so the same loop serves
// supervised and interactive runs.
func (r *unixRunner) Run(ctx context.Context) error {
	log := logger.WithComponent("runner")

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	done := make(chan error, 1)
	go func() {
		done <- r.payload(ctx)
	}()

	select {
	case sig := <-sigs:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		r.Stop()

		select {
		case err := <-done:
			return err
		case sig := <-sigs:
			log.Warn().Str("signal", sig.String()).Msg("Second signal, exiting immediately")
			return nil
		}

	case err := <-done:
		return err
	}
}

func (r *unixRunner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil && !r.stopped {
		r.stopped = true
		r.cancel()
	}
	return nil
}
