//go:build windows
// +build windows

package runner

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sys/windows/svc"

	"selfsvc/internal/hostenv"
	"selfsvc/internal/logger"
)

const stopTimeout = 30 * time.Second

type windowsRunner struct {
	name    string
	payload Payload

	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
}

// New creates the runner for this platform. name is the service name
// reported to the SCM when running supervised.
func New(name string, payload Payload) Runner {
	return &windowsRunner{name: name, payload: payload}
}

func (r *windowsRunner) Run(ctx context.Context) error {
	if hostenv.Detect() != hostenv.WindowsService {
		// Interactive: run the payload directly.
		return r.payload(ctx)
	}
	return svc.Run(r.name, r)
}

func (r *windowsRunner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil && !r.stopped {
		r.stopped = true
		r.cancel()
	}
	return nil
}

// Execute implements svc.Handler.
func (r *windowsRunner) Execute(args []string, requests <-chan svc.ChangeRequest, changes chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	log := logger.WithComponent("runner")

	const accepted = svc.AcceptStop | svc.AcceptShutdown

	changes <- svc.Status{State: svc.StartPending}

	r.ctx, r.cancel = context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- r.payload(r.ctx)
	}()

	changes <- svc.Status{State: svc.Running, Accepts: accepted}
	log.Info().Str("service", r.name).Msg("Service running")

	for {
		select {
		case req := <-requests:
			switch req.Cmd {
			case svc.Interrogate:
				changes <- req.CurrentStatus
				// Respond twice as per documentation
				time.Sleep(100 * time.Millisecond)
				changes <- req.CurrentStatus

			case svc.Stop, svc.Shutdown:
				log.Info().Msg("Stop requested by service control manager")
				changes <- svc.Status{State: svc.StopPending}
				r.Stop()

				select {
				case <-done:
				case <-time.After(stopTimeout):
					log.Warn().Msg("Timeout waiting for payload to stop")
				}

				changes <- svc.Status{State: svc.Stopped}
				return false, 0

			default:
				log.Warn().Int("cmd", int(req.Cmd)).Msg("Unexpected service control command")
			}

		case err := <-done:
			changes <- svc.Status{State: svc.Stopped}
			if err != nil {
				log.Error().Err(err).Msg("Payload exited with error")
				return true, 1
			}
			return false, 0
		}
	}
}
