// Package runner executes the application payload under whatever host
// supervises the process: the Windows service control manager where
// applicable, a signal-driven foreground loop everywhere else.
package runner

import "context"

// Payload is the application logic executed under the host.
type Payload func(ctx context.Context) error

// Runner drives a payload to completion under the detected host.
type Runner interface {
	// Run blocks until the payload returns or the host orders a stop.
	Run(ctx context.Context) error

	// Stop requests the payload to stop.
	Stop() error
}
