package server

import (
	"context"
	"testing"
	"time"
)

func TestDrainerCancelsBase(t *testing.T) {
	t.Parallel()

	d := NewDrainer(10 * time.Millisecond)
	if err := d.BaseContext().Err(); err != nil {
		t.Fatalf("base context err before drain = %v", err)
	}

	start := time.Now()
	d.Drain(t.Context())

	if err := d.BaseContext().Err(); err == nil {
		t.Error("base context not cancelled after drain")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Drain returned after %v, want at least the grace period", elapsed)
	}
}

func TestDrainerStopsOnContext(t *testing.T) {
	t.Parallel()

	d := NewDrainer(time.Hour)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	done := make(chan struct{})
	go func() {
		d.Drain(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Drain ignored a cancelled context")
	}
}
