package server

import (
	"context"
	"time"
)

// Drainer gives long-lived requests (MCP streams) a head start on shutdown:
// their base context is cancelled first, then http.Server.Shutdown runs.
type Drainer struct {
	base   context.Context
	cancel context.CancelFunc
	grace  time.Duration
}

func NewDrainer(grace time.Duration) *Drainer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Drainer{base: ctx, cancel: cancel, grace: grace}
}

// BaseContext is the parent of every request context.
func (d *Drainer) BaseContext() context.Context {
	return d.base
}

// Drain cancels the base context and waits out the grace period, or until
// ctx is done.
func (d *Drainer) Drain(ctx context.Context) {
	d.cancel()

	t := time.NewTimer(d.grace)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
