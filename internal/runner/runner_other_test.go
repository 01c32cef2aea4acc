//go:build !windows
// +build !windows

package runner

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunReturnsPayloadResult(t *testing.T) {
	want := errors.New("payload failed")
	r := New("demo", func(ctx context.Context) error { return want })

	if err := r.Run(context.Background()); !errors.Is(err, want) {
		t.Errorf("Run = %v, want the payload error", err)
	}
}

func TestStopCancelsPayloadContext(t *testing.T) {
	started := make(chan struct{})
	r := New("demo", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	<-started
	r.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil after a clean stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	r := New("demo", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	// Let the payload start before stopping twice.
	time.Sleep(20 * time.Millisecond)
	r.Stop()
	r.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
